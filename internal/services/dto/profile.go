package dto

// ProfileResponse - публичные поля пользователя; пустые колонки отдаются как ""
type ProfileResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Image     string `json:"image"`
}

type ProfileEnvelope struct {
	User ProfileResponse `json:"user"`
}

// UpdateProfileRequest - PATCH /api/profile, учитываются только переданные ключи
type UpdateProfileRequest struct {
	FirstName OptionalString `json:"firstName" swaggertype:"string"`
	LastName  OptionalString `json:"lastName" swaggertype:"string"`
	Phone     OptionalString `json:"phone" swaggertype:"string"`
	Image     OptionalString `json:"image" swaggertype:"string"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
