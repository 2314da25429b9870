package services

import (
	"context"
	"time"
)

// AuthSvcFacade authenticates the ledger operator.
type AuthSvcFacade interface {
	// Login checks credentials and returns a signed access token and its expiry.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}
