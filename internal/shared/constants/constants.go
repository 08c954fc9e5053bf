package constants

const (
	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRoleName  = "role_name"
	ContextKeyCaller    = "caller"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableRoles           = "roles"
	TablePermissions     = "permissions"
	TableRolePermissions = "role_permissions"
	TableCasbinRules     = "casbin_rule"
)
