package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's Discord id.
const CtxKeyUserID ctxKey = "user_id"

// UserID extracts the authenticated user's id from the request context.
// Empty when the request did not pass through SessionAuthMiddleware.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
