package diag

import "context"

type contextKeys string

const jobIDKey contextKeys = "jobID"

// ContextWithJobID - create context with an id of a processing job
func ContextWithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobIDKey, jobID)
}

// JobIDValue - returns jobID value taken from context
func JobIDValue(ctx context.Context) string {
	val := ctx.Value(jobIDKey)
	if val == nil {
		return ""
	}
	return val.(string)
}
