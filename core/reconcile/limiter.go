package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Limiter runs units of work with a fixed admission bound.
// A new unit starts only when fewer than Width units are outstanding.
type Limiter struct {
	width int
}

// NewLimiter returns a limiter admitting width concurrent units.
// A non-positive width falls back to DefaultWidth.
func NewLimiter(width int) *Limiter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Limiter{width: width}
}

// Unbounded returns a limiter that starts every unit immediately.
func Unbounded() *Limiter {
	return &Limiter{width: -1}
}

// Width returns the admission bound, or -1 when unbounded.
func (l *Limiter) Width() int {
	return l.width
}

// Run calls fn for every index in [0, n) and waits for all of them.
// Units report through their own output slot and never fail the group.
// Run returns the context error if ctx was cancelled before every unit finished.
func (l *Limiter) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.width)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(gctx, i)
			return nil
		})
	}

	_ = g.Wait()
	return ctx.Err()
}
