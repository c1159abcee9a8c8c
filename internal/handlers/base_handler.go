package handlers

import (
	"fmt"
	"strconv"

	"appointly/internal/logger"
	"appointly/internal/validator"
	"appointly/pkg/apperrors"
	"appointly/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB извлекает *gorm.DB из gin.Context и привязывает к нему контекст запроса.
// Ключ кладёт DBMiddleware; без него приложение сконфигурировано неверно.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db.WithContext(c.Request.Context())
}

// ============================================================================
// 2. Привязка и валидация
// ============================================================================

// BindAndValidate_JSON разбирает тело (неизвестные поля отклоняются) и
// прогоняет validate-теги. При ошибке ответ уже записан.
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWarn(ctx, "Failed to bind JSON body", "error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 3. Ошибки сервисов
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// ============================================================================
// 4. Текущий пользователь
// ============================================================================

// GetAndAuthorizeUserID читает id, который положил AuthMiddleware
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (uint, bool) {
	ctx := c.Request.Context()

	userIDVal, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		logger.CtxWarn(ctx, "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrSessionInvalid)
		return 0, false
	}

	userID, ok := userIDVal.(uint)
	if !ok || userID == 0 {
		logger.CtxWarn(ctx, "Unauthorized access: invalid userID in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrSessionInvalid)
		return 0, false
	}

	return userID, true
}

// GetSessionToken - токен серверной сессии текущего запроса
func (h *BaseHandler) GetSessionToken(c *gin.Context) string {
	return c.GetString(contextkeys.SessionKey)
}

// ============================================================================
// 5. Парсинг параметров
// ============================================================================

// ParseParamInt разбирает целый path-параметр; знак не проверяется
func ParseParamInt(c *gin.Context, key string) (int64, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return 0, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not an integer")
	}
	return value, nil
}
