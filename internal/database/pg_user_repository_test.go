package database

import (
	"context"
	"testing"

	"choicefiction/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// failingDB возвращает одну и ту же ошибку на любой запрос.
type failingDB struct {
	err error
}

func (f failingDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, f.err
}

func (f failingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, f.err
}

func (f failingDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return failingRow{err: f.err}
}

type failingRow struct {
	err error
}

func (r failingRow) Scan(...any) error { return r.err }

func uniqueErr(constraint string) error {
	return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraint}
}

func TestPgUserRepository_UniqueViolationMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "email", constraint: constraintUsersEmail, want: models.ErrEmailAlreadyExists},
		{name: "username", constraint: constraintUsersUsername, want: models.ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewPgUserRepository(failingDB{err: uniqueErr(tt.constraint)}, zap.NewNop())
			err := repo.CreateUser(ctx, &models.User{Email: "a@example.com", Username: "a"})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("other constraint is not a taken username", func(t *testing.T) {
		repo := NewPgUserRepository(failingDB{err: uniqueErr("users_pkey")}, zap.NewNop())

		err := repo.CreateUser(ctx, &models.User{Email: "a@example.com"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrUsernameTaken)
		assert.NotErrorIs(t, err, models.ErrEmailAlreadyExists)

		err = repo.UpdateUsername(ctx, uuid.New(), "작가")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrUsernameTaken)
	})

	t.Run("update username taken", func(t *testing.T) {
		repo := NewPgUserRepository(failingDB{err: uniqueErr(constraintUsersUsername)}, zap.NewNop())
		assert.ErrorIs(t, repo.UpdateUsername(ctx, uuid.New(), "작가"), models.ErrUsernameTaken)
	})
}
