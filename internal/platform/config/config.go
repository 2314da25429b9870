package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string // Empty keeps the ledger in memory
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single operator login guarding the API
	OperatorUsername     string
	OperatorPasswordHash string // bcrypt

	RateLimit      string // limiter format, e.g. "100-M"
	LoginRateLimit string
	RedisURL       string // Empty uses an in-process limiter store

	CORSAllowedOrigins []string
	SeedDefaultChart   bool
	DisplayCurrency    string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "finpulse-ledger")
	v.SetDefault("OPERATOR_USERNAME", "operator")
	v.SetDefault("OPERATOR_PASSWORD_HASH", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SEED_DEFAULT_CHART", true)
	v.SetDefault("DISPLAY_CURRENCY", "PKR")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		OperatorUsername:     v.GetString("OPERATOR_USERNAME"),
		OperatorPasswordHash: v.GetString("OPERATOR_PASSWORD_HASH"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		LoginRateLimit:       v.GetString("LOGIN_RATE_LIMIT"),
		RedisURL:             v.GetString("REDIS_URL"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		SeedDefaultChart:     v.GetBool("SEED_DEFAULT_CHART"),
		DisplayCurrency:      strings.ToUpper(v.GetString("DISPLAY_CURRENCY")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. The ledger will be kept in memory only.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	if cfg.OperatorPasswordHash == "" {
		log.Println("Warning: OPERATOR_PASSWORD_HASH not set. Login is disabled.")
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
