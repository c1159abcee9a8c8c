package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrRoleNotFound      = errors.New("role not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrTokenNotFound     = errors.New("verification token not found")
)

// pgUniqueViolation - SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// isUniqueViolation распознаёт нарушение уникального индекса. GORM с
// TranslateError отдаёт ErrDuplicatedKey, но без него приходит сырой pgconn.PgError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
