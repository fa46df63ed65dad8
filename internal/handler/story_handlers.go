package handler

import (
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createStory(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req models.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}
	story, err := h.svc.Stories.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, h.logger, err, "스토리 생성에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) listStories(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	stories, err := h.svc.Stories.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err, "스토리 목록을 불러오는데 실패했습니다.")
		return
	}
	if stories == nil {
		stories = []models.Story{}
	}
	c.JSON(http.StatusOK, stories)
}

func (h *Handler) getStory(c *gin.Context) {
	id, err := parseIDParam(c, models.ErrStoryNotFound)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}
	// Анонимный зритель различается по IP.
	viewer := optionalUserID(c)
	if viewer == "" {
		viewer = "ip:" + c.ClientIP()
	}
	story, err := h.svc.Stories.Get(c.Request.Context(), id, viewer)
	if err != nil {
		handleServiceError(c, h.logger, err, "스토리 조회에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) updateStory(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, models.ErrStoryNotFound)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}
	var req models.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}
	story, err := h.svc.Stories.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		handleServiceError(c, h.logger, err, "스토리 수정에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) deleteStory(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, err := parseIDParam(c, models.ErrStoryNotFound)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}
	if err := h.svc.Stories.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, h.logger, err, "스토리 삭제에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
