package handler

import (
	"context"
	"errors"
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError переводит ошибку сервиса в статус и сообщение для пользователя.
// internalMsg отдается при 500; подробности ошибки только логируются.
func handleServiceError(c *gin.Context, log *zap.Logger, err error, internalMsg string) {
	var statusCode int
	var message string

	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		statusCode, message = http.StatusBadRequest, vErr.Message
	case errors.Is(err, models.ErrCharacterNameTaken):
		statusCode, message = http.StatusBadRequest, models.MsgCharacterNameTaken
	case errors.Is(err, models.ErrUsernameTaken):
		statusCode, message = http.StatusBadRequest, models.MsgUsernameTaken
	case errors.Is(err, models.ErrFileMissing):
		statusCode, message = http.StatusBadRequest, models.MsgFileMissing
	case errors.Is(err, models.ErrFileTooLarge):
		statusCode, message = http.StatusBadRequest, models.MsgFileTooLarge
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode, message = http.StatusBadRequest, models.MsgInvalidRequest
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenExpired):
		statusCode, message = http.StatusUnauthorized, models.MsgUnauthorized
	case errors.Is(err, models.ErrForbidden):
		statusCode, message = http.StatusForbidden, models.MsgForbidden
	case errors.Is(err, models.ErrCharacterNotFound):
		statusCode, message = http.StatusNotFound, models.MsgCharacterNotFound
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode, message = http.StatusNotFound, models.MsgStoryNotFound
	case errors.Is(err, models.ErrChapterNotFound):
		statusCode, message = http.StatusNotFound, models.MsgChapterNotFound
	case errors.Is(err, models.ErrUserNotFound):
		statusCode, message = http.StatusNotFound, models.MsgUserNotFound
	case errors.Is(err, models.ErrNotFound):
		statusCode, message = http.StatusNotFound, models.MsgNotFound
	case errors.Is(err, models.ErrUploadFailed):
		log.Error("Upload failed", zap.String("path", c.FullPath()), zap.Error(err))
		statusCode, message = http.StatusInternalServerError, models.MsgUploadFailed
	case errors.Is(err, context.Canceled):
		// Клиент ушел, ответ уже никто не прочитает.
		log.Info("Request cancelled by client", zap.String("path", c.FullPath()))
		statusCode, message = http.StatusInternalServerError, internalMsg
	default:
		log.Error("Unhandled internal error", zap.String("path", c.FullPath()), zap.Error(err))
		statusCode, message = http.StatusInternalServerError, internalMsg
	}
	if message == "" {
		message = models.MsgInternal
	}

	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: message})
}
