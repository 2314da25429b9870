package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated operator's ID in the request context.
const userIDKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the authenticated operator's ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromCtx retrieves the authenticated operator's ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserIDFromContext retrieves the authenticated operator's ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return GetUserIDFromCtx(c.Request.Context())
}
