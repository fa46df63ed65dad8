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

var _ interfaces.StoryRepository = (*pgStoryRepository)(nil)

type pgStoryRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgStoryRepository создает PostgreSQL реализацию StoryRepository.
func NewPgStoryRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.StoryRepository {
	return &pgStoryRepository{db: db, logger: logger.Named("PgStoryRepo")}
}

const storyColumns = `id, user_id, main_character_id, title, description, genre, status, view_count, like_count, created_at, updated_at`

func (r *pgStoryRepository) Create(ctx context.Context, s *models.Story) error {
	query := `INSERT INTO stories (user_id, main_character_id, title, description, genre, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, view_count, like_count, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", s.UserID))

	err := r.db.QueryRow(ctx, query, s.UserID, s.MainCharacterID, s.Title, s.Description, s.Genre, string(s.Status)).
		Scan(&s.ID, &s.ViewCount, &s.LikeCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create story", zap.Error(err), zap.Stringer("userID", s.UserID))
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (r *pgStoryRepository) getOne(ctx context.Context, query string, args ...any) (*models.Story, error) {
	r.logger.Debug("Executing query", zap.String("query", query))
	story := &models.Story{}
	if err := pgxscan.Get(ctx, r.db, story, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story", zap.Error(err))
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

func (r *pgStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	return r.getOne(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = $1`, id)
}

func (r *pgStoryRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Story, error) {
	return r.getOne(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = $1 AND user_id = $2`, id, userID)
}

// ListByUser собирает список тремя запросами: истории, их главные персонажи и последние главы.
func (r *pgStoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE user_id = $1 ORDER BY updated_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))

	var stories []models.Story
	if err := pgxscan.Select(ctx, r.db, &stories, query, userID); err != nil {
		r.logger.Error("Failed to list stories", zap.Error(err), zap.Stringer("userID", userID))
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	if len(stories) == 0 {
		return []models.Story{}, nil
	}

	storyIDs := make([]uuid.UUID, 0, len(stories))
	characterIDs := make([]uuid.UUID, 0, len(stories))
	for _, s := range stories {
		storyIDs = append(storyIDs, s.ID)
		characterIDs = append(characterIDs, s.MainCharacterID)
	}

	var charRows []characterRow
	charQuery := `SELECT ` + characterColumns + ` FROM characters WHERE id = ANY($1)`
	if err := pgxscan.Select(ctx, r.db, &charRows, charQuery, characterIDs); err != nil {
		return nil, fmt.Errorf("failed to load main characters: %w", err)
	}
	characters := make(map[uuid.UUID]models.Character, len(charRows))
	for _, row := range charRows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		characters[c.ID] = c
	}

	var latest []models.Chapter
	chapterQuery := `SELECT DISTINCT ON (story_id) ` + chapterColumns + `
		FROM chapters WHERE story_id = ANY($1) ORDER BY story_id, sequence DESC`
	if err := pgxscan.Select(ctx, r.db, &latest, chapterQuery, storyIDs); err != nil {
		return nil, fmt.Errorf("failed to load latest chapters: %w", err)
	}
	latestByStory := make(map[uuid.UUID]models.Chapter, len(latest))
	for _, ch := range latest {
		latestByStory[ch.StoryID] = ch
	}

	for i := range stories {
		if c, ok := characters[stories[i].MainCharacterID]; ok {
			c := c
			stories[i].MainCharacter = &c
		}
		stories[i].Chapters = []models.Chapter{}
		if ch, ok := latestByStory[stories[i].ID]; ok {
			stories[i].Chapters = append(stories[i].Chapters, ch)
		}
	}
	return stories, nil
}

func (r *pgStoryRepository) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE main_character_id = $1 ORDER BY created_at DESC`
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("characterID", characterID))

	stories := []models.Story{}
	if err := pgxscan.Select(ctx, r.db, &stories, query, characterID); err != nil {
		r.logger.Error("Failed to list stories by character", zap.Error(err), zap.Stringer("characterID", characterID))
		return nil, fmt.Errorf("failed to list stories by character: %w", err)
	}
	return stories, nil
}

// Update меняет только переданные поля (COALESCE с NULL оставляет старое значение).
func (r *pgStoryRepository) Update(ctx context.Context, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error) {
	var genre []string
	if req.Genre != nil && len(*req.Genre) > 0 {
		genre = []string(*req.Genre)
	}
	var status *string
	if req.Status != nil {
		s := string(*req.Status)
		status = &s
	}

	query := `UPDATE stories SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			genre = COALESCE($4, genre),
			status = COALESCE($5, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + storyColumns
	return r.getOne(ctx, query, id, req.Title, req.Description, genre, status)
}

func (r *pgStoryRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE stories SET view_count = view_count + 1 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to increment view count", zap.Error(err), zap.Stringer("storyID", id))
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrStoryNotFound
	}
	return nil
}

func (r *pgStoryRepository) execDelete(ctx context.Context, querier interfaces.DBTX, what, query string, storyID uuid.UUID) (int64, error) {
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("storyID", storyID))
	tag, err := querier.Exec(ctx, query, storyID)
	if err != nil {
		r.logger.Error("Failed to delete "+what, zap.Error(err), zap.Stringer("storyID", storyID))
		return 0, fmt.Errorf("failed to delete %s for story %s: %w", what, storyID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgStoryRepository) DeleteVotes(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	return r.execDelete(ctx, querier, "votes", `DELETE FROM votes WHERE story_id = $1`, storyID)
}

func (r *pgStoryRepository) DeleteReviews(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	return r.execDelete(ctx, querier, "reviews", `DELETE FROM reviews WHERE story_id = $1`, storyID)
}

// DeleteChoices удаляет варианты глав истории и отвязывает чужие варианты, ведущие в ее главы.
func (r *pgStoryRepository) DeleteChoices(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	n, err := r.execDelete(ctx, querier, "choices",
		`DELETE FROM choices WHERE chapter_id IN (SELECT id FROM chapters WHERE story_id = $1)`, storyID)
	if err != nil {
		return 0, err
	}
	if _, err := r.execDelete(ctx, querier, "choice links",
		`UPDATE choices SET next_chapter_id = NULL WHERE next_chapter_id IN (SELECT id FROM chapters WHERE story_id = $1)`, storyID); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *pgStoryRepository) DeleteChapters(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	return r.execDelete(ctx, querier, "chapters", `DELETE FROM chapters WHERE story_id = $1`, storyID)
}

func (r *pgStoryRepository) Delete(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) error {
	n, err := r.execDelete(ctx, querier, "story", `DELETE FROM stories WHERE id = $1`, storyID)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrStoryNotFound
	}
	return nil
}
