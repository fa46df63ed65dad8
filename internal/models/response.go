package models

// ErrorResponse - стандартное тело ответа об ошибке.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse - тело ответа для операций без полезной нагрузки.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NameAvailability - ответ проверки имени персонажа.
type NameAvailability struct {
	IsAvailable bool   `json:"isAvailable"`
	Message     string `json:"message"`
}

// UploadResponse - ответ загрузки изображения.
type UploadResponse struct {
	URL string `json:"url"`
}
