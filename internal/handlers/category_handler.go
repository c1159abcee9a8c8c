package handlers

import (
	"net/http"
	"strconv"

	"appointly/internal/models"
	"appointly/internal/services"
	"appointly/internal/services/dto"
	"appointly/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	*BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(base *BaseHandler, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     base,
		categoryService: categoryService,
	}
}

// RegisterRoutes вешает /categories на корень. Владелец задаётся query ?userId.
func (h *CategoryHandler) RegisterRoutes(r gin.IRouter) {
	categories := r.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.GET("/:id", h.Get)
		categories.PATCH("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Param userId query int false "Только категории этого владельца"
// @Success 200 {array} models.Category
// @Failure 400 {object} apperrors.ErrorResponse "Invalid userId"
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	authz, ok := h.authorizationFromQuery(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.FindAll(h.GetDB(c), authz)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get godoc
// @Summary Категория по id
// @Tags categories
// @Produce json
// @Param id path int true "ID категории"
// @Param userId query int false "Владелец"
// @Success 200 {object} models.Category
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}
	authz, ok := h.authorizationFromQuery(c)
	if !ok {
		return
	}

	category, err := h.categoryService.FindOne(h.GetDB(c), authz, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Создать категорию
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} models.Category
// @Failure 400 {object} apperrors.ErrorResponse "Name is required / User id is required"
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Частично обновить категорию
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "ID категории"
// @Param userId query int false "Владелец"
// @Param category body dto.UpdateCategoryRequest true "Изменяемые поля"
// @Success 200 {object} models.Category
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}
	authz, ok := h.authorizationFromQuery(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(h.GetDB(c), authz, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Удалить категорию
// @Tags categories
// @Produce json
// @Param id path int true "ID категории"
// @Param userId query int false "Владелец"
// @Success 200 {object} models.Category "Удалённая запись"
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}
	authz, ok := h.authorizationFromQuery(c)
	if !ok {
		return
	}

	category, err := h.categoryService.Remove(h.GetDB(c), authz, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// categoryID: не число - 400, число вне диапазона serial - строки быть не может, 404
func (h *CategoryHandler) categoryID(c *gin.Context) (uint, bool) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return 0, false
	}
	if id <= 0 || id > models.MaxID {
		apperrors.HandleError(c, apperrors.ErrCategoryNotFound)
		return 0, false
	}
	return uint(id), true
}

// authorizationFromQuery: без userId - все записи, иначе только записи владельца
func (h *CategoryHandler) authorizationFromQuery(c *gin.Context) (services.AuthorizationContext, bool) {
	raw, present := c.GetQuery("userId")
	if !present {
		return services.Unscoped(), true
	}

	ownerID, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || ownerID <= 0 {
		apperrors.HandleError(c, apperrors.ErrInvalidOwnerID)
		return services.AuthorizationContext{}, false
	}
	return services.OwnedBy(uint(ownerID)), true
}
