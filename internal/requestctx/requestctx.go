// Package requestctx carries the per-request correlation id through
// context so logs, job runs and API envelopes can reference it.
package requestctx

import "context"

type key struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// GetRequestID returns the correlation id or "" outside a request scope.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}
