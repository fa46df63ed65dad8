package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StoryService - истории пользователя.
type StoryService interface {
	Create(ctx context.Context, userID uuid.UUID, req models.CreateStoryRequest) (*models.Story, error)
	// Get отдает историю с главным персонажем и главами и засчитывает просмотр viewer.
	Get(ctx context.Context, id uuid.UUID, viewer string) (*models.Story, error)
	Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error)
	// Delete удаляет историю и все зависимые записи в одной транзакции.
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Story, error)
}

type storyServiceImpl struct {
	stories    interfaces.StoryRepository
	characters interfaces.CharacterRepository
	chapters   interfaces.ChapterRepository
	tx         interfaces.TransactionManager
	views      interfaces.ViewRegistry
	publisher  interfaces.StoryEventPublisher
	viewWindow time.Duration
	logger     *zap.Logger
}

// StoryServiceDeps - зависимости StoryService.
type StoryServiceDeps struct {
	Stories    interfaces.StoryRepository
	Characters interfaces.CharacterRepository
	Chapters   interfaces.ChapterRepository
	Tx         interfaces.TransactionManager
	Views      interfaces.ViewRegistry
	Publisher  interfaces.StoryEventPublisher
	// ViewWindow - окно, в котором повторные просмотры одного зрителя не считаются. 0 отключает.
	ViewWindow time.Duration
}

// NewStoryService создает StoryService.
func NewStoryService(deps StoryServiceDeps, logger *zap.Logger) StoryService {
	return &storyServiceImpl{
		stories:    deps.Stories,
		characters: deps.Characters,
		chapters:   deps.Chapters,
		tx:         deps.Tx,
		views:      deps.Views,
		publisher:  deps.Publisher,
		viewWindow: deps.ViewWindow,
		logger:     logger.Named("StoryService"),
	}
}

func (s *storyServiceImpl) Create(ctx context.Context, userID uuid.UUID, req models.CreateStoryRequest) (*models.Story, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	characterID, err := uuid.Parse(strings.TrimSpace(req.MainCharacterID))
	if err != nil {
		return nil, models.ErrCharacterNotFound
	}
	// Главный персонаж должен принадлежать автору.
	if _, err := s.characters.GetByIDForUser(ctx, characterID, userID); err != nil {
		return nil, err
	}

	story := &models.Story{
		UserID:          userID,
		MainCharacterID: characterID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Genre:           []string(req.Genre),
		Status:          models.StoryStatusDraft,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}

	s.logger.Info("Story created", zap.Stringer("storyID", story.ID), zap.Stringer("userID", userID))
	publishStoryEvent(ctx, s.publisher, s.logger, models.StoryEventCreated, story.ID, userID, nil)
	return story, nil
}

func (s *storyServiceImpl) Get(ctx context.Context, id uuid.UUID, viewer string) (*models.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		character, err := s.characters.GetByID(gctx, story.MainCharacterID)
		if err != nil {
			if errors.Is(err, models.ErrCharacterNotFound) {
				return nil
			}
			return fmt.Errorf("get main character: %w", err)
		}
		story.MainCharacter = character
		return nil
	})
	g.Go(func() error {
		chapters, err := s.chapters.ListByStory(gctx, id)
		if err != nil {
			return fmt.Errorf("list chapters: %w", err)
		}
		story.Chapters = chapters
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.countView(ctx, id, viewer)
	return story, nil
}

// countView увеличивает счетчик, если зритель не смотрел историю в пределах окна.
// Ошибки не прерывают чтение истории.
func (s *storyServiceImpl) countView(ctx context.Context, id uuid.UUID, viewer string) {
	fresh := true
	if s.views != nil && s.viewWindow > 0 && viewer != "" {
		ok, err := s.views.MarkViewed(ctx, id, viewer, s.viewWindow)
		if err != nil {
			// Redis недоступен: лучше посчитать лишний просмотр, чем потерять.
			s.logger.Warn("View registry unavailable, counting view", zap.Stringer("storyID", id), zap.Error(err))
		} else {
			fresh = ok
		}
	}
	if !fresh {
		return
	}
	if err := s.stories.IncrementViewCount(ctx, id); err != nil {
		s.logger.Error("Failed to increment view count", zap.Stringer("storyID", id), zap.Error(err))
	}
}

func (s *storyServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error) {
	// Чужая история неотличима от отсутствующей.
	story, err := s.stories.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return story, nil
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}

	updated, err := s.stories.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Story updated", zap.Stringer("storyID", id), zap.Stringer("userID", userID))
	publishStoryEvent(ctx, s.publisher, s.logger, models.StoryEventUpdated, id, userID, nil)
	return updated, nil
}

func (s *storyServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.stories.GetByIDForUser(ctx, id, userID); err != nil {
		return err
	}

	logFields := []zap.Field{zap.Stringer("storyID", id), zap.Stringer("userID", userID)}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		votes, err := s.stories.DeleteVotes(ctx, tx, id)
		if err != nil {
			return err
		}
		reviews, err := s.stories.DeleteReviews(ctx, tx, id)
		if err != nil {
			return err
		}
		choices, err := s.stories.DeleteChoices(ctx, tx, id)
		if err != nil {
			return err
		}
		chapters, err := s.stories.DeleteChapters(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.stories.Delete(ctx, tx, id); err != nil {
			return err
		}
		s.logger.Debug("Story dependents deleted", append(logFields,
			zap.Int64("votes", votes),
			zap.Int64("reviews", reviews),
			zap.Int64("choices", choices),
			zap.Int64("chapters", chapters),
		)...)
		return nil
	})
	if err != nil {
		s.logger.Error("Story deletion rolled back", append(logFields, zap.Error(err))...)
		return fmt.Errorf("delete story: %w", err)
	}

	s.logger.Info("Story deleted", logFields...)
	publishStoryEvent(ctx, s.publisher, s.logger, models.StoryEventDeleted, id, userID, nil)
	return nil
}

func (s *storyServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	stories, err := s.stories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}
