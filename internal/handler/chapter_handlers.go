package handler

import (
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) upsertChapter(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req models.UpsertChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}
	chapter, err := h.svc.Chapters.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, h.logger, err, "챕터 저장에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *Handler) getChapter(c *gin.Context) {
	id, err := parseIDParam(c, models.ErrChapterNotFound)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}
	view, err := h.svc.Chapters.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err, "챕터 조회에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) updateChapter(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, models.ErrChapterNotFound)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}
	var req models.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}
	chapter, err := h.svc.Chapters.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		handleServiceError(c, h.logger, err, "챕터 수정에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, chapter)
}
