package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"choicefiction/internal/mocks"
	"choicefiction/internal/models"
	"choicefiction/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-jwt-secret"

func TestAuthService_SignIn_ExistingUser(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewAuthService(users, testSecret, time.Hour, zap.NewNop())
	existing := &models.User{ID: uuid.New(), Email: "aria@example.com", Username: "아리아", Role: models.RoleFree}

	users.On("GetUserByEmail", ctx, "aria@example.com").Return(existing, nil).Once()
	users.On("LinkOAuthAccount", ctx, existing.ID, "google", "g-123").Return(nil).Once()

	user, token, err := svc.SignIn(ctx, models.OAuthIdentity{Provider: "google", ProviderAccountID: "g-123", Email: " Aria@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, claims.UserID)
	assert.Equal(t, "아리아", claims.Username)
	assert.Equal(t, models.RoleFree, claims.Role)
	users.AssertExpectations(t)
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthService_SignIn_CreatesUser(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewAuthService(users, testSecret, time.Hour, zap.NewNop())
	newID := uuid.New()

	users.On("GetUserByEmail", ctx, "new@example.com").Return(nil, models.ErrUserNotFound).Once()
	users.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return strings.HasPrefix(u.Username, models.PlaceholderUsernamePrefix) &&
			u.Role == models.RoleFree && u.ProfileImage != nil && *u.ProfileImage == "https://img/p.png"
	})).Return(func(_ context.Context, u *models.User) error {
		u.ID = newID
		return nil
	}).Once()

	user, token, err := svc.SignIn(ctx, models.OAuthIdentity{Email: "new@example.com", Picture: "https://img/p.png"})
	require.NoError(t, err)
	assert.Equal(t, newID, user.ID)
	assert.True(t, user.HasPlaceholderUsername())
	assert.NotEmpty(t, token)
	users.AssertNotCalled(t, "LinkOAuthAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_SignIn_ConcurrentSignUpRereads(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewAuthService(users, testSecret, time.Hour, zap.NewNop())
	winner := &models.User{ID: uuid.New(), Email: "race@example.com", Username: "user_1", Role: models.RoleFree}

	users.On("GetUserByEmail", ctx, "race@example.com").Return(nil, models.ErrUserNotFound).Once()
	users.On("CreateUser", ctx, mock.Anything).Return(models.ErrEmailAlreadyExists).Once()
	users.On("GetUserByEmail", ctx, "race@example.com").Return(winner, nil).Once()

	user, _, err := svc.SignIn(ctx, models.OAuthIdentity{Email: "race@example.com"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
	users.AssertExpectations(t)
}

func TestAuthService_SignIn_Errors(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewAuthService(users, testSecret, time.Hour, zap.NewNop())

	_, _, err := svc.SignIn(ctx, models.OAuthIdentity{Email: "  "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	dbErr := errors.New("connection refused")
	users.On("GetUserByEmail", ctx, "x@example.com").Return(nil, dbErr).Once()
	_, _, err = svc.SignIn(ctx, models.OAuthIdentity{Email: "x@example.com"})
	assert.ErrorIs(t, err, dbErr)
}

func TestAuthService_VerifyToken(t *testing.T) {
	users := new(mocks.MockUserRepository)
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "a@example.com", Username: "아리아", Role: models.RoleFree}
	users.On("GetUserByEmail", ctx, "a@example.com").Return(user, nil)

	expired := service.NewAuthService(users, testSecret, -time.Minute, zap.NewNop())
	_, token, err := expired.SignIn(ctx, models.OAuthIdentity{Email: "a@example.com"})
	require.NoError(t, err)
	_, err = expired.VerifyToken(token)
	assert.ErrorIs(t, err, models.ErrTokenExpired)

	valid := service.NewAuthService(users, testSecret, time.Hour, zap.NewNop())
	_, token, err = valid.SignIn(ctx, models.OAuthIdentity{Email: "a@example.com"})
	require.NoError(t, err)

	other := service.NewAuthService(users, "another-secret", time.Hour, zap.NewNop())
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)

	_, err = valid.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "가", wantErr: true},
		{in: " 가나 ", want: "가나"},
		{in: strings.Repeat("가", 20), want: strings.Repeat("가", 20)},
		{in: strings.Repeat("가", 21), wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := service.ValidateUsername(tt.in)
		if tt.wantErr {
			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr, tt.in)
			assert.Equal(t, models.MsgUsernameLength, vErr.Message)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestAuthService_UpdateUsername(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewAuthService(users, testSecret, time.Hour, zap.NewNop())
	userID := uuid.New()

	users.On("UpdateUsername", ctx, userID, "아리아").Return(nil).Once()
	users.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID, Username: "아리아", Role: models.RoleFree}, nil).Once()

	token, err := svc.UpdateUsername(ctx, userID, " 아리아 ")
	require.NoError(t, err)
	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "아리아", claims.Username)

	users.On("UpdateUsername", ctx, userID, "taken").Return(models.ErrUsernameTaken).Once()
	_, err = svc.UpdateUsername(ctx, userID, "taken")
	assert.ErrorIs(t, err, models.ErrUsernameTaken)

	_, err = svc.UpdateUsername(ctx, userID, "x")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
