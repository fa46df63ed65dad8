package models

import "errors"

// Общие ошибки приложения
var (
	// Ресурсы / БД
	ErrNotFound          = errors.New("resource not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrStoryNotFound     = errors.New("story not found")
	ErrChapterNotFound   = errors.New("chapter not found")

	// Уникальность
	ErrCharacterNameTaken = errors.New("character name already used by this user")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// Аутентификация / доступ
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenMalformed     = errors.New("token is malformed")
	ErrTokenExpired       = errors.New("token has expired")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")

	// Запрос
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input data")

	// Внешние сервисы
	ErrAIGenerationFailed = errors.New("AI generation failed")
	ErrUploadFailed       = errors.New("upload failed")
	ErrFileMissing        = errors.New("file is missing")
	ErrFileTooLarge       = errors.New("file too large")

	ErrInternalServer = errors.New("internal server error")
)

// ValidationError - ошибка валидации с сообщением для пользователя.
// errors.Is(err, ErrInvalidInput) для неё истинно.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError создает ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
