package handlers

import (
	"net/http"

	"appointly/internal/services"
	"appointly/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes: public - открытые маршруты под /api (обычно с rate limit),
// protected - закрытые AuthMiddleware
func (h *AuthHandler) RegisterRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	public.POST("/register", h.Register)

	auth := public.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/password-reset/request", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ConfirmPasswordReset)
	}

	protected.POST("/auth/logout", h.Logout)
}

// Register godoc
// @Summary Регистрация клиента
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Данные пользователя"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse "User already exists"
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Register(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created"})
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.ErrorResponse "Invalid email or password"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Завершить сессию
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(h.GetDB(c), h.GetSessionToken(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// RequestPasswordReset godoc
// @Summary Запросить ссылку для сброса пароля
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.ErrorResponse "User not found"
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /api/auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.authService.RequestPasswordReset(c.Request.Context(), h.GetDB(c), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// ConfirmPasswordReset godoc
// @Summary Установить новый пароль по токену
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetConfirmRequest true "Токен и новый пароль"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse "Invalid or expired token / Token expired"
// @Router /api/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
