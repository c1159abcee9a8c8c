package apperrors

import "net/http"

// --- Categories ---

var ErrCategoryNotFound = New(
	CodeNotFound,
	"category",
	"Category not found",
	http.StatusNotFound,
)

var ErrCategoryNameRequired = New(
	CodeValidationFailed,
	"category",
	"Name is required",
	http.StatusBadRequest,
)

var ErrCategoryOwnerRequired = New(
	CodeValidationFailed,
	"category",
	"User id is required",
	http.StatusBadRequest,
)

// ErrNoFieldsToUpdate используется и категориями, и профилем
var ErrNoFieldsToUpdate = New(
	CodeValidationFailed,
	"request",
	"No valid fields to update",
	http.StatusBadRequest,
)

var ErrInvalidOwnerID = New(
	CodeValidationFailed,
	"request",
	"Invalid userId",
	http.StatusBadRequest,
)

// --- Users & profile ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrFirstNameRequired = New(
	CodeValidationFailed,
	"profile",
	"First name is required",
	http.StatusBadRequest,
)

var ErrLastNameRequired = New(
	CodeValidationFailed,
	"profile",
	"Last name is required",
	http.StatusBadRequest,
)

var ErrInvalidPhone = New(
	CodeValidationFailed,
	"profile",
	"Phone must be at most 20 characters",
	http.StatusBadRequest,
)

// ErrUserAlreadyExists возвращается при регистрации с занятым email.
// Клиент ожидает 400, а не 409.
var ErrUserAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User already exists",
	http.StatusBadRequest,
)

// --- Passwords ---

var ErrPasswordsRequired = New(
	CodeValidationFailed,
	"password",
	"Current and new passwords are required",
	http.StatusBadRequest,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"password",
	"Password must be at least 8 characters",
	http.StatusBadRequest,
)

var ErrPasswordNotSet = New(
	CodeInvalidOperation,
	"password",
	"Password cannot be updated for this account",
	http.StatusBadRequest,
)

var ErrCurrentPasswordIncorrect = New(
	CodeInvalidCredentials,
	"password",
	"Current password is incorrect",
	http.StatusBadRequest,
)

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusBadRequest,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusBadRequest,
)

var ErrSessionInvalid = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized",
	http.StatusUnauthorized,
)

// --- Email ---

var ErrEmailDelivery = New(
	CodeExternalServiceError,
	"email",
	"Failed to send email",
	http.StatusBadGateway,
)
