package helpers

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher hashes and verifies bcrypt passwords on a bounded set of
// goroutines so expensive hashing never ties up more than workers CPUs.
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewPasswordHasher builds a hasher; a cost below bcrypt.MinCost falls back
// to bcrypt.DefaultCost and workers <= 0 means one per CPU.
func NewPasswordHasher(cost, workers int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PasswordHasher{cost: cost, sem: semaphore.NewWeighted(int64(workers))}
}

// Cost returns the bcrypt cost in use.
func (h *PasswordHasher) Cost() int { return h.cost }

// Hash returns the bcrypt encoding of plain; the salt is generated per call
// and embedded in the result.
func (h *PasswordHasher) Hash(ctx context.Context, plain string) (string, error) {
	var (
		out    []byte
		hashEr error
	)
	if err := h.run(ctx, func() {
		out, hashEr = bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	}); err != nil {
		return "", err
	}
	if hashEr != nil {
		return "", hashEr
	}
	return string(out), nil
}

// Compare reports whether plain matches hash. A mismatch is not an error.
func (h *PasswordHasher) Compare(ctx context.Context, hash, plain string) (bool, error) {
	var cmpErr error
	if err := h.run(ctx, func() {
		cmpErr = bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	}); err != nil {
		return false, err
	}
	switch {
	case cmpErr == nil:
		return true, nil
	case errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, cmpErr
	}
}

// run executes fn on its own goroutine once a worker slot is free. If ctx
// ends first the caller returns early and fn finishes in the background.
func (h *PasswordHasher) run(ctx context.Context, fn func()) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer h.sem.Release(1)
		defer close(done)
		fn()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
