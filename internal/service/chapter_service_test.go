package service_test

import (
	"context"
	"testing"

	"choicefiction/internal/mocks"
	"choicefiction/internal/models"
	"choicefiction/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChapterService() (service.ChapterService, *mocks.MockChapterRepository, *mocks.MockStoryRepository, *mocks.MockStoryEventPublisher) {
	chapters := new(mocks.MockChapterRepository)
	stories := new(mocks.MockStoryRepository)
	publisher := new(mocks.MockStoryEventPublisher)
	return service.NewChapterService(chapters, stories, publisher, zap.NewNop()), chapters, stories, publisher
}

func TestChapterService_Upsert(t *testing.T) {
	ctx := context.Background()
	svc, chapters, stories, publisher := newChapterService()
	userID, storyID, chapterID := uuid.New(), uuid.New(), uuid.New()

	stories.On("GetByID", ctx, storyID).Return(&models.Story{ID: storyID, UserID: userID}, nil).Once()
	chapters.On("Upsert", ctx, mock.MatchedBy(func(c *models.Chapter) bool {
		return c.StoryID == storyID && c.Sequence == 2 && c.Content == "본문"
	})).Return(func(_ context.Context, c *models.Chapter) error {
		c.ID = chapterID
		return nil
	}).Once()
	publisher.On("PublishStoryEvent", ctx, mock.MatchedBy(func(e models.StoryEvent) bool {
		return e.Type == models.StoryEventChapter && e.ChapterID != nil && *e.ChapterID == chapterID
	})).Return(nil).Once()

	chapter, err := svc.Upsert(ctx, userID, models.UpsertChapterRequest{
		StoryID: storyID.String(), Sequence: 2, Title: "2장", Content: "본문",
	})
	require.NoError(t, err)
	assert.Equal(t, chapterID, chapter.ID)
	publisher.AssertExpectations(t)
}

func TestChapterService_Upsert_Forbidden(t *testing.T) {
	ctx := context.Background()
	svc, chapters, stories, _ := newChapterService()
	storyID := uuid.New()

	stories.On("GetByID", ctx, storyID).Return(&models.Story{ID: storyID, UserID: uuid.New()}, nil).Once()

	_, err := svc.Upsert(ctx, uuid.New(), models.UpsertChapterRequest{StoryID: storyID.String(), Sequence: 1})
	assert.ErrorIs(t, err, models.ErrForbidden)
	chapters.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestChapterService_Upsert_Validation(t *testing.T) {
	svc, _, stories, _ := newChapterService()

	_, err := svc.Upsert(context.Background(), uuid.New(), models.UpsertChapterRequest{StoryID: uuid.NewString(), Sequence: 0})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), uuid.New(), models.UpsertChapterRequest{StoryID: "garbage", Sequence: 1})
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
	stories.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChapterService_Get_NavigationAndHTML(t *testing.T) {
	ctx := context.Background()
	svc, chapters, stories, _ := newChapterService()
	storyID, ownerID := uuid.New(), uuid.New()
	first, second := uuid.New(), uuid.New()

	chapters.On("GetByID", ctx, first).Return(&models.Chapter{
		ID: first, StoryID: storyID, Sequence: 1, Content: "첫 줄\n**둘째 줄**<script>x</script>",
	}, nil).Once()
	stories.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID, Title: "Test", UserID: ownerID}, nil)
	chapters.On("PreviousID", mock.Anything, storyID, 1).Return(nil, nil).Once()
	chapters.On("NextID", mock.Anything, storyID, 1).Return(&second, nil).Once()

	view, err := svc.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Test", view.Story.Title)
	assert.Equal(t, ownerID, view.Story.UserID)
	assert.Nil(t, view.Navigation.PreviousChapterID)
	require.NotNil(t, view.Navigation.NextChapterID)
	assert.Equal(t, second, *view.Navigation.NextChapterID)

	assert.Contains(t, view.Chapter.ContentHTML, "<br")
	assert.Contains(t, view.Chapter.ContentHTML, "<strong>둘째 줄</strong>")
	assert.NotContains(t, view.Chapter.ContentHTML, "<script>")
	assert.Contains(t, view.Chapter.Content, "<script>", "raw content is returned untouched")
}

func TestChapterService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, chapters, _, _ := newChapterService()
	id := uuid.New()
	chapters.On("GetByID", ctx, id).Return(nil, models.ErrChapterNotFound).Once()

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, models.ErrChapterNotFound)
}

func TestChapterService_Update(t *testing.T) {
	ctx := context.Background()
	svc, chapters, stories, publisher := newChapterService()
	ownerID, storyID, id := uuid.New(), uuid.New(), uuid.New()
	content := "수정된 본문"

	chapters.On("GetByID", ctx, id).Return(&models.Chapter{ID: id, StoryID: storyID, Sequence: 1}, nil)
	stories.On("GetByID", ctx, storyID).Return(&models.Story{ID: storyID, UserID: ownerID}, nil)

	// Чужой пользователь
	_, err := svc.Update(ctx, uuid.New(), id, models.UpdateChapterRequest{Content: &content})
	assert.ErrorIs(t, err, models.ErrForbidden)
	chapters.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	chapters.On("Update", ctx, id, models.UpdateChapterRequest{Content: &content}).
		Return(&models.Chapter{ID: id, StoryID: storyID, Sequence: 1, Content: content}, nil).Once()
	publisher.On("PublishStoryEvent", ctx, mock.Anything).Return(nil).Once()

	updated, err := svc.Update(ctx, ownerID, id, models.UpdateChapterRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, 1, updated.Sequence)
	chapters.AssertExpectations(t)
}
