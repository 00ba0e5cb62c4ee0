package log

import (
	"context"
)

type requestID struct{}

func RequestIDFromContext(c context.Context) string {
	if v, ok := c.Value(requestID{}).(string); ok {
		return v
	}
	return ""
}

func AttachRequestIDToContext(c context.Context, id string) context.Context {
	return context.WithValue(c, requestID{}, id)
}
