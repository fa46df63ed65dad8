package handler

import (
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getDraft(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	draft, err := h.svc.Drafts.Get(c.Request.Context(), userID, c.Param("slot"))
	if err != nil {
		handleServiceError(c, h.logger, err, models.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) saveDraft(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}
	saved, err := h.svc.Drafts.Save(c.Request.Context(), userID, c.Param("slot"), draft)
	if err != nil {
		handleServiceError(c, h.logger, err, models.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) patchDraft(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}
	draft, err := h.svc.Drafts.Patch(c.Request.Context(), userID, c.Param("slot"), patch)
	if err != nil {
		handleServiceError(c, h.logger, err, models.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) resetDraft(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Drafts.Reset(c.Request.Context(), userID, c.Param("slot")); err != nil {
		handleServiceError(c, h.logger, err, models.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
