package lock

import (
	"context"
	"sync"
)

// LocalLocker serialises history merges inside one process
type LocalLocker struct {
	sem chan struct{}
}

// NewLocalLocker creates a new in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{sem: make(chan struct{}, 1)}
}

// Acquire blocks until the lock is free or ctx is done.
// The returned release is safe to call more than once.
func (l *LocalLocker) Acquire(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() { once.Do(func() { <-l.sem }) }, nil
}
