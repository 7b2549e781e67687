package common

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyDocName   contextKey = "doc_name"
)

// WithRequestID adds a request ID to the context, minting one if empty.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithDocName adds the source document name to the context
func WithDocName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyDocName, name)
}

// DocNameFromContext extracts the source document name from context
func DocNameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyDocName).(string); ok {
		return name
	}
	return ""
}
