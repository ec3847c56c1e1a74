package api

import (
	"context"
)

type keyType string

const (
	adminKey keyType = "admin"
)

// ctxWithAdmin marks the request as made by the site owner.
func ctxWithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// ctxIsAdmin reports whether the request carried valid admin credentials.
func ctxIsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(adminKey).(bool)
	return isAdmin
}
