package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	ContextKey       = "USER_CONTEXT"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyExternalID    = "external_id"
	KeyIsAdmin       = "isAdmin"
	KeyFromProtected = "from_protected"
)
