package constants

// Context keys
const (
	ContextKeyUserID     = "user_id"
	ContextKeyRoles      = "roles"
	ContextKeyRequestID  = "request_id"
	ContextKeyResourceID = "resource_id"
)

// Headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderTotalCount    = "X-Total-Count"
	BearerPrefix        = "Bearer "
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxUsernameLength = 150
	MaxNameLength     = 100
	MaxTitleLength    = 255
)

// MaxAIGeneratedTasks caps how many drafts a single generate call may return.
const MaxAIGeneratedTasks = 20

// Token types carried in the "typ" claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
