package handler

import (
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) generatePrompts(c *gin.Context) {
	var req models.GeneratePromptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, models.NewValidationError(models.MsgPromptsMissing), "")
		return
	}
	result, err := h.svc.Suggestions.GeneratePrompts(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		handleServiceError(c, h.logger, err, models.MsgPromptsFailed)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) generateSuggestions(c *gin.Context) {
	var req models.GenerateSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, models.NewValidationError(models.MsgSuggestionsMissing), "")
		return
	}
	result, err := h.svc.Suggestions.GenerateSuggestions(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		handleServiceError(c, h.logger, err, models.MsgSuggestionsFailed)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listGenres(c *gin.Context) {
	if h.svc.Genres == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, h.svc.Genres.List())
}
