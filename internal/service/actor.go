package service

import "context"

type actorKey struct{}

// WithActor attaches the authenticated username to ctx for audit records.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFromContext returns the username stored by WithActor, or "anonymous".
func ActorFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(actorKey{}).(string); ok && name != "" {
		return name
	}
	return "anonymous"
}
