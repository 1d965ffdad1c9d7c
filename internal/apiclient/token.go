package apiclient

import "context"

// TokenSource supplies the bearer token for one outgoing request.
// An empty token means the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken always returns the same token (service account, CLI).
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

type tokenCtxKey struct{}

// WithToken stores a per-request token, usually the signed-in admin's one.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext reads the token placed by WithToken.
func TokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(tokenCtxKey{}).(string)
	return s
}

// ContextToken prefers the request token and falls back to Fallback.
type ContextToken struct {
	Fallback string
}

func (t ContextToken) Token(ctx context.Context) (string, error) {
	if s := TokenFromContext(ctx); s != "" {
		return s, nil
	}
	return t.Fallback, nil
}

type requestIDCtxKey struct{}

// WithRequestID makes the client forward X-Request-ID to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(requestIDCtxKey{}).(string)
	return s
}

type adminCtxKey struct{}

// WithAdminName attributes status changes made with ctx to name.
func WithAdminName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, adminCtxKey{}, name)
}

func adminNameFrom(ctx context.Context) string {
	s, _ := ctx.Value(adminCtxKey{}).(string)
	return s
}
