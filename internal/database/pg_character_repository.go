package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository создает PostgreSQL реализацию CharacterRepository.
func NewPgCharacterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{db: db, logger: logger.Named("PgCharacterRepo")}
}

const characterColumns = `id, user_id, name, gender, age, profile_image, personality, appearance, background, stats, created_at, updated_at`

// characterRow - строка таблицы characters; stats хранится строкой.
type characterRow struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Gender       string    `db:"gender"`
	Age          int       `db:"age"`
	ProfileImage *string   `db:"profile_image"`
	Personality  string    `db:"personality"`
	Appearance   string    `db:"appearance"`
	Background   string    `db:"background"`
	Stats        string    `db:"stats"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row characterRow) toModel() (models.Character, error) {
	stats, err := models.DecodeStats(row.Stats)
	if err != nil {
		return models.Character{}, fmt.Errorf("character %s: %w", row.ID, err)
	}
	return models.Character{
		ID:           row.ID,
		UserID:       row.UserID,
		Name:         row.Name,
		Gender:       row.Gender,
		Age:          row.Age,
		ProfileImage: row.ProfileImage,
		Personality:  row.Personality,
		Appearance:   row.Appearance,
		Background:   row.Background,
		Stats:        stats,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// Create вставляет персонажа одним INSERT; дубликат имени у владельца ловится ограничением.
func (r *pgCharacterRepository) Create(ctx context.Context, c *models.Character) error {
	encoded, err := c.Stats.Encode()
	if err != nil {
		return err
	}
	query := `INSERT INTO characters (user_id, name, gender, age, profile_image, personality, appearance, background, stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", c.UserID), zap.String("name", c.Name))

	err = r.db.QueryRow(ctx, query, c.UserID, c.Name, c.Gender, c.Age, c.ProfileImage, c.Personality, c.Appearance, c.Background, encoded).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintCharacterName {
			r.logger.Warn("Duplicate character name", zap.Stringer("userID", c.UserID), zap.String("name", c.Name))
			return models.ErrCharacterNameTaken
		}
		r.logger.Error("Failed to create character", zap.Error(err), zap.Stringer("userID", c.UserID))
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

func (r *pgCharacterRepository) getOne(ctx context.Context, query string, args ...any) (*models.Character, error) {
	r.logger.Debug("Executing query", zap.String("query", query))
	var row characterRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to get character", zap.Error(err))
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	c, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	return r.getOne(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = $1`, id)
}

func (r *pgCharacterRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Character, error) {
	return r.getOne(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *pgCharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE user_id = $1 ORDER BY created_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	var rows []characterRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, userID); err != nil {
		r.logger.Error("Failed to list characters", zap.Error(err), zap.Stringer("userID", userID))
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	out := make([]models.Character, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *pgCharacterRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM characters WHERE user_id = $1 AND name = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, name).Scan(&exists); err != nil {
		r.logger.Error("Failed to check character name", zap.Error(err), zap.Stringer("userID", userID))
		return false, fmt.Errorf("failed to check character name: %w", err)
	}
	return exists, nil
}
