package metrics

import (
	"context"
)

type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Add(metric Name, v int64, attrs map[string]string) {}

func (n *Noop) Shutdown(ctx context.Context) error {
	return nil
}
