package constants

const (
	// ContextKeyIdentity is the gin context key holding the authenticated caller.
	ContextKeyIdentity = "identity"

	// BroadcastAdminTarget is the sentinel notification recipient representing
	// the administrative audience. All admin identities share this inbox.
	BroadcastAdminTarget = "ADMIN"

	// UnknownBoardName is substituted when a notification's board cannot be resolved.
	UnknownBoardName = "Unknown Board"

	DefaultTaskStatus   = "To Do"
	DefaultTaskPriority = "Medium"

	MinPasswordLength = 8

	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)
