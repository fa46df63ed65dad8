package handler

import (
	"net/http"
	"strings"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ключи gin.Context.
const (
	ctxUserID = "user_id"
	ctxClaims = "claims"
)

// tokenFromRequest достает сессионный токен из cookie или заголовка Authorization.
func (h *Handler) tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(h.cfg.SessionCookie); err == nil && token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// verifyRequest проверяет токен запроса. nil без ошибки - токена нет.
func (h *Handler) verifyRequest(c *gin.Context) (*models.Claims, error) {
	token := h.tokenFromRequest(c)
	if token == "" {
		return nil, nil
	}
	claims, err := h.svc.Auth.VerifyToken(token)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	tokenVerificationsTotal.WithLabelValues("success").Inc()
	return claims, nil
}

// AuthMiddleware требует действующую сессию.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.verifyRequest(c)
		if err != nil {
			h.logger.Debug("Session token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			handleServiceError(c, h.logger, err, models.MsgUnauthorized)
			return
		}
		if claims == nil {
			handleServiceError(c, h.logger, models.ErrUnauthorized, models.MsgUnauthorized)
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware запоминает пользователя, если сессия есть, и пропускает запрос в любом случае.
func (h *Handler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := h.verifyRequest(c); err == nil && claims != nil {
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxClaims, claims)
		}
		c.Next()
	}
}

// PageGuard перенаправляет на страницы входа в зависимости от наличия сессии.
func (h *Handler) PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		claims, _ := h.verifyRequest(c)
		signedIn := claims != nil

		switch {
		case path == "/register/username":
			if !signedIn {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		case strings.HasPrefix(path, "/login"), strings.HasPrefix(path, "/register"):
			if signedIn {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
		case strings.HasPrefix(path, "/create"), strings.HasPrefix(path, "/write"):
			if !signedIn {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// userIDFromContext возвращает пользователя, установленного AuthMiddleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// requireUserID пишет 401, если пользователя в контексте нет.
func (h *Handler) requireUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, h.logger, models.ErrUnauthorized, models.MsgUnauthorized)
	}
	return id, ok
}

// optionalUserID - id пользователя строкой или пустая строка.
func optionalUserID(c *gin.Context) string {
	if id, ok := userIDFromContext(c); ok {
		return id.String()
	}
	return ""
}

// parseIDParam разбирает :id. Некорректный UUID неотличим от отсутствующей записи.
func parseIDParam(c *gin.Context, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
