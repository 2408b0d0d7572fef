package txn

import (
	"context"
	"errors"
)

// ErrStoreUnavailable marks a store failure that may succeed on retry (timeout, lost connection).
var ErrStoreUnavailable = errors.New("store temporarily unavailable")

// Manager runs fn as one unit of work. Repository calls made with the ctx passed
// to fn commit together or not at all.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
