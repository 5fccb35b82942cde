// Package requestdata carries server-observed request context from the HTTP
// layer down to resolvers and services.
package requestdata

import (
	"context"

	"showcase/api/utils"
)

// Info is what the server knows about the caller independent of any payload.
type Info struct {
	IP        string
	UserAgent string
	Language  string
	Claims    *utils.Claims
	// Superuser is set when the caller authenticated with the API key.
	Superuser bool
}

// UserID returns the authenticated user id as a string, or nil when anonymous.
func (i Info) UserID() *string {
	if i.Claims == nil || i.Claims.Subject == "" {
		return nil
	}
	id := i.Claims.Subject
	return &id
}

type ctxKey struct{}

func WithInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// FromContext returns the Info stored in ctx, or the zero value.
func FromContext(ctx context.Context) Info {
	info, _ := ctx.Value(ctxKey{}).(Info)
	return info
}
