package handler

import (
	"net/http"
	"time"

	"choicefiction/internal/genres"
	"choicefiction/internal/handler/apidocs"
	"choicefiction/internal/middleware"
	"choicefiction/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

const (
	// oauthSessionName - cookie-сессия, в которой живет OAuth state.
	oauthSessionName = "choicefiction_oauth"
	swaggerSpecPath  = "/api/docs/swagger.json"
)

// Services - сервисы, которые обслуживает HTTP слой.
type Services struct {
	Characters  service.CharacterService
	Stories     service.StoryService
	Chapters    service.ChapterService
	Auth        service.AuthService
	Suggestions service.SuggestionService
	Drafts      service.DraftService
	Uploads     service.UploadService
	Genres      *genres.Catalog
}

// Config - настройки HTTP слоя.
type Config struct {
	SessionCookie  string
	SessionTTL     time.Duration
	SessionSecret  string
	CookieSecure   bool
	AllowedOrigins []string
	MaxUploadBytes int64
	// UploadsDir раздается по /uploads, если не пустой (дисковое хранилище).
	UploadsDir    string
	EnableMetrics bool
	Google        OAuthConfig
}

// Handler - HTTP обработчики приложения.
type Handler struct {
	svc    Services
	cfg    Config
	oauth  *googleOAuth
	logger *zap.Logger
}

// NewHandler создает Handler.
func NewHandler(svc Services, cfg Config, logger *zap.Logger) *Handler {
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = "session_token"
	}
	registerValidators()
	return &Handler{
		svc:    svc,
		cfg:    cfg,
		oauth:  newGoogleOAuth(cfg.Google),
		logger: logger.Named("HTTPHandler"),
	}
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами.
// aiLimiter ограничивает частоту AI запросов; nil отключает ограничение.
func NewRouter(h *Handler, aiLimiter gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(h.logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(h.cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = h.cfg.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(oauthSessionName, store))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if h.cfg.UploadsDir != "" {
		router.Static("/uploads", h.cfg.UploadsDir)
	}

	router.GET(swaggerSpecPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", apidocs.SwaggerJSON())
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecPath)))

	h.RegisterRoutes(router, aiLimiter)

	// Prometheus подключается после регистрации маршрутов.
	if h.cfg.EnableMetrics {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}
	return router
}

// RegisterRoutes регистрирует API и страничные маршруты.
func (h *Handler) RegisterRoutes(router *gin.Engine, aiLimiter gin.HandlerFunc) {
	authRequired := h.AuthMiddleware()
	authOptional := h.OptionalAuthMiddleware()
	if aiLimiter == nil {
		aiLimiter = func(c *gin.Context) { c.Next() }
	}

	api := router.Group("/api")

	characters := api.Group("/characters", authRequired)
	{
		characters.GET("", h.listCharacters)
		characters.POST("", h.createCharacter)
		characters.POST("/check-name", h.checkCharacterName)
		characters.GET("/:id", h.getCharacter)
	}

	stories := api.Group("/stories")
	{
		stories.GET("", authRequired, h.listStories)
		stories.POST("", authRequired, h.createStory)
		stories.GET("/:id", authOptional, h.getStory)
		stories.PATCH("/:id", authRequired, h.updateStory)
		stories.DELETE("/:id", authRequired, h.deleteStory)
	}

	chapters := api.Group("/chapters")
	{
		chapters.POST("", authRequired, h.upsertChapter)
		chapters.GET("/:id", h.getChapter)
		chapters.PATCH("/:id", authRequired, h.updateChapter)
	}

	aiGroup := api.Group("/ai", aiLimiter, authOptional)
	{
		aiGroup.POST("/generate-prompts", h.generatePrompts)
		aiGroup.POST("/generate-suggestions", h.generateSuggestions)
	}

	api.POST("/upload/image", authRequired, h.uploadImage)
	api.GET("/genres", h.listGenres)

	drafts := api.Group("/drafts", authRequired)
	{
		drafts.GET("/:slot", h.getDraft)
		drafts.PUT("/:slot", h.saveDraft)
		drafts.PATCH("/:slot", h.patchDraft)
		drafts.DELETE("/:slot", h.resetDraft)
	}

	auth := api.Group("/auth")
	{
		auth.GET("/google/login", h.googleLogin)
		auth.GET("/google/callback", h.googleCallback)
		auth.POST("/logout", h.logout)
		auth.GET("/session", authRequired, h.session)
		auth.POST("/username", authRequired, h.registerUsername)
	}

	pages := router.Group("", h.PageGuard())
	{
		pages.GET("/login", h.page)
		pages.GET("/register", h.page)
		pages.GET("/register/username", h.page)
		pages.GET("/create/*path", h.page)
		pages.GET("/write/*path", h.page)
	}
}

func (h *Handler) page(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": c.Request.URL.Path})
}
