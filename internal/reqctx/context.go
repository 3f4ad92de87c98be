package reqctx

import (
	"context"

	"github.com/greenschool/zerowaste-backend/internal/model"
)

type ctxKey string

const (
	keyRID   ctxKey = "zw_rid"
	keyActor ctxKey = "zw_actor"
)

// Actor is the authenticated user attached to a request.
type Actor struct {
	ID    uint64
	Name  string
	Email string
	Role  model.Role
	Grade *int
}

// WithRID stores the request correlation id for structured logs.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithActor stores the authenticated actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, keyActor, a)
}

// ActorFrom returns the authenticated actor if present.
func ActorFrom(ctx context.Context) (Actor, bool) {
	v, ok := ctx.Value(keyActor).(Actor)
	return v, ok
}
