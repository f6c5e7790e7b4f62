package auth

import "context"

type tokenContextKey struct{}

// WithToken stores the raw session credential in the context so outbound
// clients can attach it to remote calls
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the session credential, if any
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}
