package core

import "context"

// Context keys for run options
type contextKey string

const suppressOutputKey contextKey = "suppressOutput"

// withSuppressOutput marks the context so that no digest is printed
func withSuppressOutput(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressOutputKey, true)
}

// shouldSuppressOutput returns whether console output should be suppressed from context
func shouldSuppressOutput(ctx context.Context) bool {
	val := ctx.Value(suppressOutputKey)
	if val == nil {
		return false // default: print the digest
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
