package handler

import (
	"net/http"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createCharacter(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, bindError(err), "")
		return
	}

	character, err := h.svc.Characters.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, h.logger, err, "캐릭터 생성에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) listCharacters(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	characters, err := h.svc.Characters.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err, "캐릭터 목록을 불러오는데 실패했습니다.")
		return
	}
	if characters == nil {
		characters = []models.Character{}
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, err := parseIDParam(c, models.ErrCharacterNotFound)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}
	character, err := h.svc.Characters.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err, "캐릭터 조회에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) checkCharacterName(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req models.CheckNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, h.logger, models.NewValidationError(models.MsgCharacterNameRequired), "")
		return
	}
	result, err := h.svc.Characters.CheckName(c.Request.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(c, h.logger, err, "이름 검사에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, result)
}
