// Package actor carries the acting user through request contexts so ledger
// writes can attribute changes without services importing the HTTP layer.
package actor

import "context"

type ctxKey struct{}

// WithUserID injects the acting user's id into the context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the acting user's id when one was attached to the request.
func UserID(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(ctxKey{}).(uint)
	return id, ok
}
