package contextkeys

type contextKey string

// DBContextKey - ключ, по которому *gorm.DB лежит в gin.Context
const DBContextKey = contextKey("db")

// Ключи gin.Context, которые выставляет AuthMiddleware
const (
	UserIDKey  = "userID"
	RoleKey    = "role"
	SessionKey = "sessionToken"
)
