package mocks

import (
	"context"
	"io"
	"time"

	"choicefiction/internal/ai"
	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTransactionManager выполняет fn сразу, передавая Tx как querier.
// Ошибка, заданная через On("WithTransaction"), возвращается без вызова fn.
type MockTransactionManager struct {
	mock.Mock
	Tx interfaces.DBTX
}

var _ interfaces.TransactionManager = (*MockTransactionManager)(nil)

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Tx)
}

// MockViewRegistry is a mock type for the ViewRegistry type
type MockViewRegistry struct {
	mock.Mock
}

var _ interfaces.ViewRegistry = (*MockViewRegistry)(nil)

func (m *MockViewRegistry) MarkViewed(ctx context.Context, storyID uuid.UUID, viewer string, window time.Duration) (bool, error) {
	args := m.Called(ctx, storyID, viewer, window)
	return args.Bool(0), args.Error(1)
}

// MockStoryEventPublisher is a mock type for the StoryEventPublisher type
type MockStoryEventPublisher struct {
	mock.Mock
}

var _ interfaces.StoryEventPublisher = (*MockStoryEventPublisher)(nil)

func (m *MockStoryEventPublisher) PublishStoryEvent(ctx context.Context, event models.StoryEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockImageStore is a mock type for the ImageStore type
type MockImageStore struct {
	mock.Mock
}

var _ interfaces.ImageStore = (*MockImageStore)(nil)

func (m *MockImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	if fn, ok := args.Get(0).(func(context.Context, string, string, io.Reader, int64) (string, error)); ok {
		return fn(ctx, key, contentType, body, size)
	}
	return args.String(0), args.Error(1)
}

// MockAIClient is a mock type for the ai.Client type
type MockAIClient struct {
	mock.Mock
}

var _ ai.Client = (*MockAIClient)(nil)

func (m *MockAIClient) Generate(ctx context.Context, req ai.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) Provider() string { return "mock" }
func (m *MockAIClient) Model() string    { return "mock-model" }
