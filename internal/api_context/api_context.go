package api_context

import (
	"context"
)

type ctxKey string

const (
	IDKey               ctxKey = "id"
	AuthUserIDKey       ctxKey = "authUserID"
	AuthCapabilitiesKey ctxKey = "authCapabilities"
)

func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(IDKey).(string)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok
}

func AuthCapabilitiesFromContext(ctx context.Context) ([]string, bool) {
	caps, ok := ctx.Value(AuthCapabilitiesKey).([]string)
	return caps, ok
}
