// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the authenticated actor.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// Actor describes the authenticated caller of a service operation.
// The outer layer (CLI session, gateway) establishes it once and it
// accompanies every call into the application services.
type Actor struct {
	ID   int64
	Role string
}

// WithActor returns a context with the actor embedded.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the actor from context, or the zero Actor if not set.
func ActorFromContext(ctx context.Context) Actor {
	if v := ctx.Value(ActorKey{}); v != nil {
		return v.(Actor)
	}
	return Actor{}
}
