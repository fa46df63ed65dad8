package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService - вход через OAuth провайдера и сессионные токены.
type AuthService interface {
	// SignIn находит пользователя по email или создает нового и выдает сессионный токен.
	SignIn(ctx context.Context, identity models.OAuthIdentity) (*models.User, string, error)
	// VerifyToken проверяет подпись и срок токена.
	VerifyToken(tokenString string) (*models.Claims, error)
	// UpdateUsername меняет имя и возвращает перевыпущенный токен.
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (string, error)
}

type authServiceImpl struct {
	users      interfaces.UserRepository
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewAuthService создает AuthService.
func NewAuthService(users interfaces.UserRepository, jwtSecret string, sessionTTL time.Duration, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		users:      users,
		secret:     []byte(jwtSecret),
		sessionTTL: sessionTTL,
		now:        time.Now,
		logger:     logger.Named("AuthService"),
	}
}

func (s *authServiceImpl) SignIn(ctx context.Context, identity models.OAuthIdentity) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, "", models.NewValidationError(models.MsgLoginFailed)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrUserNotFound):
		user, err = s.createUser(ctx, email, identity.Picture)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("find user by email: %w", err)
	}

	if identity.Provider != "" && identity.ProviderAccountID != "" {
		if err := s.users.LinkOAuthAccount(ctx, user.ID, identity.Provider, identity.ProviderAccountID); err != nil {
			return nil, "", fmt.Errorf("link oauth account: %w", err)
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("User signed in", zap.Stringer("userID", user.ID), zap.String("provider", identity.Provider))
	return user, token, nil
}

// createUser создает пользователя с временным именем user_<unix millis>.
// Если параллельный вход уже создал запись с этим email, перечитывает ее.
func (s *authServiceImpl) createUser(ctx context.Context, email, picture string) (*models.User, error) {
	user := &models.User{
		Email:    email,
		Username: models.PlaceholderUsernamePrefix + strconv.FormatInt(s.now().UnixMilli(), 10),
		Role:     models.RoleFree,
	}
	if picture != "" {
		user.ProfileImage = &picture
	}

	err := s.users.CreateUser(ctx, user)
	if err == nil {
		s.logger.Info("New user registered", zap.Stringer("userID", user.ID))
		return user, nil
	}
	if errors.Is(err, models.ErrEmailAlreadyExists) {
		s.logger.Info("Concurrent sign-up detected, re-reading user")
		return s.users.GetUserByEmail(ctx, email)
	}
	return nil, fmt.Errorf("create user: %w", err)
}

func (s *authServiceImpl) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := models.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (s *authServiceImpl) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// ValidateUsername нормализует имя и проверяет длину в символах.
func ValidateUsername(username string) (string, error) {
	username = normalizeName(username)
	n := utf8.RuneCountInString(username)
	if n < models.UsernameMinLength || n > models.UsernameMaxLength {
		return "", models.NewValidationError(models.MsgUsernameLength)
	}
	return username, nil
}

func (s *authServiceImpl) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	username, err := ValidateUsername(username)
	if err != nil {
		return "", err
	}
	// Глобальную уникальность проверяет ограничение users_username_key.
	if err := s.users.UpdateUsername(ctx, userID, username); err != nil {
		return "", err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	s.logger.Info("Username updated", zap.Stringer("userID", userID))
	return s.issueToken(user)
}
