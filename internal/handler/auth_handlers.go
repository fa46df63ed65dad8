package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"choicefiction/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	googleProvider = "google"
	oauthStateKey  = "oauth_state"

	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// OAuthConfig - параметры Google OAuth. Пустые URL заменяются адресами Google.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

type googleOAuth struct {
	config      *oauth2.Config
	userInfoURL string
}

func newGoogleOAuth(cfg OAuthConfig) *googleOAuth {
	authURL, tokenURL, userInfoURL := cfg.AuthURL, cfg.TokenURL, cfg.UserInfoURL
	if authURL == "" {
		authURL = defaultGoogleAuthURL
	}
	if tokenURL == "" {
		tokenURL = defaultGoogleTokenURL
	}
	if userInfoURL == "" {
		userInfoURL = defaultGoogleUserInfoURL
	}
	return &googleOAuth{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: userInfoURL,
	}
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// identity обменивает code на токен и читает профиль пользователя.
func (g *googleOAuth) identity(ctx context.Context, code string) (models.OAuthIdentity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return models.OAuthIdentity{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return models.OAuthIdentity{}, err
	}
	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return models.OAuthIdentity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.OAuthIdentity{}, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.OAuthIdentity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return models.OAuthIdentity{
		Provider:          googleProvider,
		ProviderAccountID: info.Sub,
		Email:             info.Email,
		Picture:           info.Picture,
	}, nil
}

func newOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (h *Handler) googleLogin(c *gin.Context) {
	state, err := newOAuthState()
	if err != nil {
		handleServiceError(c, h.logger, err, models.MsgLoginFailed)
		return
	}
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		handleServiceError(c, h.logger, fmt.Errorf("save oauth session: %w", err), models.MsgLoginFailed)
		return
	}
	c.Redirect(http.StatusFound, h.oauth.config.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

func (h *Handler) googleCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	_ = session.Save()

	if expected == "" || c.Query("state") != expected {
		h.logger.Warn("OAuth state mismatch", zap.String("ip", c.ClientIP()))
		signInsTotal.WithLabelValues(googleProvider, "state_mismatch").Inc()
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: models.MsgLoginFailed})
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Info("OAuth provider returned error", zap.String("error", errParam))
		signInsTotal.WithLabelValues(googleProvider, "denied").Inc()
		c.Redirect(http.StatusFound, "/login")
		return
	}

	identity, err := h.oauth.identity(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Error("OAuth exchange failed", zap.Error(err))
		signInsTotal.WithLabelValues(googleProvider, "failure").Inc()
		c.AbortWithStatusJSON(http.StatusBadGateway, models.ErrorResponse{Error: models.MsgLoginFailed})
		return
	}

	user, token, err := h.svc.Auth.SignIn(c.Request.Context(), identity)
	if err != nil {
		signInsTotal.WithLabelValues(googleProvider, "failure").Inc()
		handleServiceError(c, h.logger, err, models.MsgLoginFailed)
		return
	}
	signInsTotal.WithLabelValues(googleProvider, "success").Inc()

	h.setSessionCookie(c, token)
	if user.HasPlaceholderUsername() {
		c.Redirect(http.StatusFound, "/register/username")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookie, token, int(h.cfg.SessionTTL/time.Second), "/", "", h.cfg.CookieSecure, true)
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

type sessionResponse struct {
	User    models.SessionUser `json:"user"`
	Expires *time.Time         `json:"expires,omitempty"`
}

func (h *Handler) session(c *gin.Context) {
	v, _ := c.Get(ctxClaims)
	claims, ok := v.(*models.Claims)
	if !ok {
		handleServiceError(c, h.logger, models.ErrUnauthorized, models.MsgUnauthorized)
		return
	}
	resp := sessionResponse{User: claims.SessionUser()}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		resp.Expires = &exp
	}
	c.JSON(http.StatusOK, resp)
}

type usernameRequest struct {
	Username string `json:"username"`
}

func (h *Handler) registerUsername(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	var req usernameRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		handleServiceError(c, h.logger, models.NewValidationError(models.MsgUsernameLength), "")
		return
	}

	token, err := h.svc.Auth.UpdateUsername(c.Request.Context(), userID, req.Username)
	if err != nil {
		handleServiceError(c, h.logger, err, "필명 등록에 실패했습니다.")
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
