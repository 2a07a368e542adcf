package domain

import (
	"context"
	"time"
)

// CheckoutRepository keeps the serialized checkout of each browser session
// between requests.
//
// Lock takes the session's checkout lock for at most ttl and returns the
// token that releases it, or ErrCheckoutLocked while another request holds
// it. Unlock only releases the lock while it is still held with token.
type CheckoutRepository interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
	Lock(ctx context.Context, sessionID string, ttl time.Duration) (string, error)
	Unlock(ctx context.Context, sessionID, token string) error
}
