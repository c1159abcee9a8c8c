package handlers

import (
	"net/http"

	"appointly/internal/services"
	"appointly/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// RegisterRoutes ожидает группу, уже закрытую AuthMiddleware
func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profile := r.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
		profile.POST("/password", h.ChangePassword)
	}
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileEnvelope
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "User not found"
// @Router /api/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Обновить профиль
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "firstName, lastName, phone, image"
// @Success 200 {object} dto.ProfileEnvelope
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ChangePassword godoc
// @Summary Сменить пароль
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body dto.ChangePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/profile/password [post]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.profileService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
