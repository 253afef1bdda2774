// Package requestid issues and propagates per-request correlation ids.
package requestid

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Header is the request/response header carrying the id.
const Header = "X-Request-Id"

func New() string {
	return uuid.NewString()
}

type ctxKey struct{}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, strings.TrimSpace(id))
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
