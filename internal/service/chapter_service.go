package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ChapterService - главы историй.
type ChapterService interface {
	// Upsert создает главу или полностью заменяет главу с тем же номером.
	Upsert(ctx context.Context, userID uuid.UUID, req models.UpsertChapterRequest) (*models.Chapter, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ChapterView, error)
	Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error)
}

// Сырой HTML в тексте главы экранируется.
var chapterMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
)

type chapterServiceImpl struct {
	chapters  interfaces.ChapterRepository
	stories   interfaces.StoryRepository
	publisher interfaces.StoryEventPublisher
	logger    *zap.Logger
}

// NewChapterService создает ChapterService.
func NewChapterService(chapters interfaces.ChapterRepository, stories interfaces.StoryRepository, publisher interfaces.StoryEventPublisher, logger *zap.Logger) ChapterService {
	return &chapterServiceImpl{
		chapters:  chapters,
		stories:   stories,
		publisher: publisher,
		logger:    logger.Named("ChapterService"),
	}
}

func (s *chapterServiceImpl) Upsert(ctx context.Context, userID uuid.UUID, req models.UpsertChapterRequest) (*models.Chapter, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	storyID, err := uuid.Parse(strings.TrimSpace(req.StoryID))
	if err != nil {
		return nil, models.ErrStoryNotFound
	}
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		s.logger.Warn("Chapter upsert by non-owner", zap.Stringer("storyID", storyID), zap.Stringer("userID", userID))
		return nil, models.ErrForbidden
	}

	chapter := &models.Chapter{
		StoryID:  storyID,
		Title:    req.Title,
		Content:  req.Content,
		Sequence: req.Sequence,
	}
	if err := s.chapters.Upsert(ctx, chapter); err != nil {
		return nil, fmt.Errorf("upsert chapter: %w", err)
	}

	s.logger.Info("Chapter saved", zap.Stringer("chapterID", chapter.ID), zap.Stringer("storyID", storyID), zap.Int("sequence", chapter.Sequence))
	publishStoryEvent(ctx, s.publisher, s.logger, models.StoryEventChapter, storyID, userID, &chapter.ID)
	return chapter, nil
}

func (s *chapterServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.ChapterView, error) {
	chapter, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &models.ChapterView{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		story, err := s.stories.GetByID(gctx, chapter.StoryID)
		if err != nil {
			return fmt.Errorf("get chapter story: %w", err)
		}
		view.Story = models.ChapterStoryRef{ID: story.ID, Title: story.Title, UserID: story.UserID}
		return nil
	})
	g.Go(func() error {
		prev, err := s.chapters.PreviousID(gctx, chapter.StoryID, chapter.Sequence)
		if err != nil {
			return fmt.Errorf("previous chapter: %w", err)
		}
		view.Navigation.PreviousChapterID = prev
		return nil
	})
	g.Go(func() error {
		next, err := s.chapters.NextID(gctx, chapter.StoryID, chapter.Sequence)
		if err != nil {
			return fmt.Errorf("next chapter: %w", err)
		}
		view.Navigation.NextChapterID = next
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	chapter.ContentHTML = renderContent(chapter.Content)
	view.Chapter = *chapter
	return view, nil
}

func (s *chapterServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error) {
	chapter, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	story, err := s.stories.GetByID(ctx, chapter.StoryID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		s.logger.Warn("Chapter update by non-owner", zap.Stringer("chapterID", id), zap.Stringer("userID", userID))
		return nil, models.ErrForbidden
	}
	if req.Title == nil && req.Content == nil {
		return chapter, nil
	}

	updated, err := s.chapters.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	publishStoryEvent(ctx, s.publisher, s.logger, models.StoryEventChapter, story.ID, userID, &updated.ID)
	return updated, nil
}

func renderContent(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := chapterMarkdown.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return buf.String()
}
