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

var _ interfaces.ChapterRepository = (*pgChapterRepository)(nil)

type pgChapterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgChapterRepository создает PostgreSQL реализацию ChapterRepository.
func NewPgChapterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ChapterRepository {
	return &pgChapterRepository{db: db, logger: logger.Named("PgChapterRepo")}
}

const chapterColumns = `id, story_id, title, content, sequence, created_at, updated_at`

// Upsert - один оператор: вставка или перезапись главы с тем же номером.
// Заодно обновляет updated_at истории, чтобы она поднималась в списке.
func (r *pgChapterRepository) Upsert(ctx context.Context, ch *models.Chapter) error {
	query := `WITH touched AS (
			UPDATE stories SET updated_at = NOW() WHERE id = $1
		)
		INSERT INTO chapters (story_id, sequence, title, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT ` + constraintChapterSequence + `
		DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, updated_at = NOW()
		RETURNING ` + chapterColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("storyID", ch.StoryID), zap.Int("sequence", ch.Sequence))

	if err := pgxscan.Get(ctx, r.db, ch, query, ch.StoryID, ch.Sequence, ch.Title, ch.Content); err != nil {
		r.logger.Error("Failed to upsert chapter", zap.Error(err), zap.Stringer("storyID", ch.StoryID), zap.Int("sequence", ch.Sequence))
		return fmt.Errorf("failed to upsert chapter: %w", err)
	}
	return nil
}

func (r *pgChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE id = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("chapterID", id))

	ch := &models.Chapter{}
	if err := pgxscan.Get(ctx, r.db, ch, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrChapterNotFound
		}
		r.logger.Error("Failed to get chapter", zap.Error(err), zap.Stringer("chapterID", id))
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return ch, nil
}

func (r *pgChapterRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]models.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE story_id = $1 ORDER BY sequence ASC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("storyID", storyID))

	chapters := []models.Chapter{}
	if err := pgxscan.Select(ctx, r.db, &chapters, query, storyID); err != nil {
		r.logger.Error("Failed to list chapters", zap.Error(err), zap.Stringer("storyID", storyID))
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

func (r *pgChapterRepository) neighbourID(ctx context.Context, query string, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, storyID, sequence).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find neighbour chapter: %w", err)
	}
	return &id, nil
}

func (r *pgChapterRepository) PreviousID(ctx context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	return r.neighbourID(ctx,
		`SELECT id FROM chapters WHERE story_id = $1 AND sequence < $2 ORDER BY sequence DESC LIMIT 1`,
		storyID, sequence)
}

func (r *pgChapterRepository) NextID(ctx context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	return r.neighbourID(ctx,
		`SELECT id FROM chapters WHERE story_id = $1 AND sequence > $2 ORDER BY sequence ASC LIMIT 1`,
		storyID, sequence)
}

// Update меняет только title и content; номер главы не трогается.
func (r *pgChapterRepository) Update(ctx context.Context, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error) {
	query := `UPDATE chapters SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + chapterColumns
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("chapterID", id))

	ch := &models.Chapter{}
	if err := pgxscan.Get(ctx, r.db, ch, query, id, req.Title, req.Content); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrChapterNotFound
		}
		r.logger.Error("Failed to update chapter", zap.Error(err), zap.Stringer("chapterID", id))
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}
	return ch, nil
}
