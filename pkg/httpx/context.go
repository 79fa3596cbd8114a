package httpx

import "context"

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   string
	Username string
	Email    string
	IsAdmin  bool
}

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

func contextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the caller injected by SessionAuth, or
// false when the request never passed through it.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}
