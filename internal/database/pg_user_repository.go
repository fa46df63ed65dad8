package database

import (
	"context"
	"errors"
	"fmt"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository создает PostgreSQL реализацию UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{db: db, logger: logger.Named("PgUserRepo")}
}

const userColumns = `id, email, username, profile_image, role, created_at, updated_at`

func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, username, profile_image, role) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("email", user.Email), zap.String("username", user.Username))

	err := r.db.QueryRow(ctx, query, user.Email, user.Username, user.ProfileImage, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			r.logger.Warn("Unique violation on user insert", zap.String("constraint", constraint), zap.String("email", user.Email))
			switch constraint {
			case constraintUsersEmail:
				return models.ErrEmailAlreadyExists
			case constraintUsersUsername:
				return models.ErrUsernameTaken
			}
		}
		r.logger.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	return nil
}

func (r *pgUserRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	r.logger.Debug("Executing query", zap.String("query", query))

	user := &models.User{}
	if err := pgxscan.Get(ctx, r.db, user, query, arg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user", zap.Error(err), zap.String("where", where))
		return nil, fmt.Errorf("failed to get user from postgres: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

// UpdateUsername полагается на ограничение users_username_key вместо предварительной проверки.
func (r *pgUserRepository) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	query := `UPDATE users SET username = $2, updated_at = NOW() WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	tag, err := r.db.Exec(ctx, query, userID, username)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintUsersUsername {
			return models.ErrUsernameTaken
		}
		r.logger.Error("Failed to update username", zap.Error(err), zap.Stringer("userID", userID))
		return fmt.Errorf("failed to update username: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *pgUserRepository) LinkOAuthAccount(ctx context.Context, userID uuid.UUID, provider, providerAccountID string) error {
	query := `INSERT INTO oauth_accounts (user_id, provider, provider_account_id) VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT ` + constraintOAuthAccount + ` DO NOTHING`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID), zap.String("provider", provider))

	if _, err := r.db.Exec(ctx, query, userID, provider, providerAccountID); err != nil {
		r.logger.Error("Failed to link oauth account", zap.Error(err), zap.Stringer("userID", userID))
		return fmt.Errorf("failed to link oauth account: %w", err)
	}
	return nil
}
