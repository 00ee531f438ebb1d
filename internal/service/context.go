package service

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID attaches the request identifier used to correlate audit
// entries and logs. Set by the HTTP request-ID middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
