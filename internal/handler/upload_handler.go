package handler

import (
	"errors"
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead - запас на заголовки multipart сверх лимита файла.
const multipartOverhead = 1 << 20

func (h *Handler) uploadImage(c *gin.Context) {
	if h.cfg.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			uploadsTotal.WithLabelValues("too_large").Inc()
			handleServiceError(c, h.logger, models.ErrFileTooLarge, "")
			return
		}
		uploadsTotal.WithLabelValues("missing").Inc()
		handleServiceError(c, h.logger, models.ErrFileMissing, "")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open multipart file", zap.Error(err))
		uploadsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, h.logger, models.ErrUploadFailed, models.MsgUploadFailed)
		return
	}
	defer file.Close()

	url, err := h.svc.Uploads.UploadImage(c.Request.Context(), file, header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		uploadsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, h.logger, err, models.MsgUploadFailed)
		return
	}
	uploadsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, models.UploadResponse{URL: url})
}
