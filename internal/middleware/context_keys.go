package middleware

import "context"

// contextKey is a private type for request-context values.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	callerIDKey  = contextKey("callerID")
)

// GetCallerIDFromCtx retrieves the authenticated caller ID from the context.
// It returns the ID and a boolean indicating whether it was found.
func GetCallerIDFromCtx(ctx context.Context) (string, bool) {
	callerID, ok := ctx.Value(callerIDKey).(string)
	if !ok || callerID == "" {
		return "", false
	}
	return callerID, true
}
