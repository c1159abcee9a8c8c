package auth

// Principal - аутентифицированный пользователь текущего запроса
type Principal struct {
	UserID    uint
	Email     string
	Role      string
	SessionID string
}
