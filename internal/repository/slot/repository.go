package slot

import "context"

// Repository persists opaque named slots per owner. Get returns
// domain.ErrNotFound when the slot was never written or has been deleted.
type Repository interface {
	Get(ctx context.Context, owner, name string) ([]byte, error)
	Put(ctx context.Context, owner, name string, data []byte) error
	Delete(ctx context.Context, owner, name string) error
	Ping(ctx context.Context) error
}
