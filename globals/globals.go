package globals

type ContextKey string

const (
	UserIDKey  ContextKey = "userId"
	IsStaffKey ContextKey = "isStaff"
	ParamIDKey ContextKey = "params"
)
