package completion

import (
	"context"
	"fmt"

	"commas/internal/system"
)

// Provider returns raw candidates for the text typed so far in cwd.
type Provider interface {
	Complete(ctx context.Context, input, cwd string) ([]Candidate, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, input, cwd string) ([]Candidate, error)

func (f ProviderFunc) Complete(ctx context.Context, input, cwd string) ([]Candidate, error) {
	return f(ctx, input, cwd)
}

// Safe wraps p so that errors, panics and calls outliving ctx yield an
// empty list. The returned provider never reports an error.
func Safe(p Provider) Provider {
	return ProviderFunc(func(ctx context.Context, input, cwd string) ([]Candidate, error) {
		type result struct {
			list []Candidate
			err  error
		}
		ch := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					ch <- result{err: fmt.Errorf("provider panic: %v", r)}
				}
			}()
			list, err := p.Complete(ctx, input, cwd)
			ch <- result{list: list, err: err}
		}()
		select {
		case r := <-ch:
			if r.err != nil {
				system.Logger.Warn("completion provider failed", "input", input, "err", r.err)
				return nil, nil
			}
			return r.list, nil
		case <-ctx.Done():
			system.Logger.Debug("completion provider timed out", "input", input)
			return nil, nil
		}
	})
}
