package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"json"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	// Внешний адрес сервиса, используется для ссылок на загруженные файлы и OAuth redirect.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// PostgreSQL
	DBHost         string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string        `envconfig:"DB_PORT" default:"5432"`
	DBUser         string        `envconfig:"DB_USER" default:"postgres"`
	DBName         string        `envconfig:"DB_NAME" default:"choicefiction"`
	DBSSLMode      string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns     int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout  time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	DBPassword     string
	ConnectRetries int           `envconfig:"CONNECT_RETRIES" default:"5"`
	ConnectDelay   time.Duration `envconfig:"CONNECT_RETRY_DELAY" default:"3s"`

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string

	// Сессия
	JWTSecret       string
	SessionSecret   string
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	SessionCookie   string        `envconfig:"SESSION_COOKIE_NAME" default:"session_token"`
	CookieSecure    bool          `envconfig:"COOKIE_SECURE" default:"false"`
	ViewDebounceTTL time.Duration `envconfig:"VIEW_DEBOUNCE_WINDOW" default:"30m"`
	DraftTTL        time.Duration `envconfig:"DRAFT_TTL" default:"720h"`

	// Google OAuth
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string
	GoogleRedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL"`

	// AI
	AIProvider           string        `envconfig:"AI_PROVIDER" default:"openai"`
	AIModel              string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AIBaseURL            string        `envconfig:"AI_BASE_URL"`
	AITemperature        float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	AIRequestTimeout     time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"90s"`
	AIRateLimitPerMinute uint          `envconfig:"AI_RATE_LIMIT_PER_MINUTE" default:"20"`
	OpenAIAPIKey         string
	GeminiAPIKey         string

	// Загрузка файлов
	UploadBackend  string `envconfig:"UPLOAD_BACKEND" default:"disk"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	UploadMaxBytes int64  `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`
	AWSRegion      string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	AWSBucket      string `envconfig:"AWS_S3_BUCKET"`
	AWSAccessKeyID string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string

	// RabbitMQ (пустой URL отключает публикацию событий)
	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	StoryEventsQueue string `envconfig:"STORY_EVENTS_QUEUE" default:"story_events"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// IsProduction сообщает, запущен ли сервис в боевом окружении.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate проверяет согласованность значений, которые envconfig проверить не может.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return errors.New("openai_api_key secret is required for AI_PROVIDER=openai")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("gemini_api_key secret is required for AI_PROVIDER=gemini")
		}
	case "ollama":
		if c.AIBaseURL == "" {
			return errors.New("AI_BASE_URL is required for AI_PROVIDER=ollama")
		}
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider)
	}

	switch c.UploadBackend {
	case "disk":
	case "s3":
		if c.AWSBucket == "" {
			return errors.New("AWS_S3_BUCKET is required for UPLOAD_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}

	if c.AITemperature < 0 || c.AITemperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE must be within [0, 2], got %v", c.AITemperature)
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Обязательные секреты
	var loadErr error
	if cfg.DBPassword, loadErr = ReadSecret("db_password"); loadErr != nil {
		return nil, loadErr
	}
	if cfg.JWTSecret, loadErr = ReadSecret("jwt_secret"); loadErr != nil {
		return nil, loadErr
	}

	// Необязательные секреты
	optional := map[string]*string{
		"redis_password":        &cfg.RedisPassword,
		"session_secret":        &cfg.SessionSecret,
		"google_client_secret":  &cfg.GoogleClientSecret,
		"openai_api_key":        &cfg.OpenAIAPIKey,
		"gemini_api_key":        &cfg.GeminiAPIKey,
		"aws_secret_access_key": &cfg.AWSSecretKey,
	}
	for name, target := range optional {
		value, err := ReadSecret(name)
		if err != nil {
			log.Printf("Optional secret '%s' not found: %v", name, err)
			continue
		}
		*target = value
	}
	if cfg.SessionSecret == "" {
		// Cookie-сессия только хранит OAuth state, поэтому допустимо переиспользовать JWT секрет.
		cfg.SessionSecret = cfg.JWTSecret
	}
	if cfg.GoogleRedirectURL == "" {
		cfg.GoogleRedirectURL = strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/auth/google/callback"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("Configuration loaded successfully.")
	return &cfg, nil
}
