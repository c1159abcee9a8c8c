package dto

// CreateCategoryRequest - тело POST /categories.
// Правила для name и userId проверяет сервис, чтобы вернуть точные сообщения.
type CreateCategoryRequest struct {
	Name        *string `json:"name" example:"Haircuts"`
	Description *string `json:"description" example:"Men's and women's haircuts"`
	UserID      *int64  `json:"userId" example:"7"`
}

// UpdateCategoryRequest - тело PATCH /categories/:id.
// Учитываются только переданные ключи.
type UpdateCategoryRequest struct {
	Name        OptionalString `json:"name" swaggertype:"string"`
	Description OptionalString `json:"description" swaggertype:"string"`
}
