package database

import (
	"context"
	"sync"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
)

var _ interfaces.DraftStore = (*MemoryDraftStore)(nil)

// MemoryDraftStore хранит черновики в памяти процесса. Используется в тестах и без Redis.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]models.Draft
}

// NewMemoryDraftStore создает пустое хранилище.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]models.Draft)}
}

func (s *MemoryDraftStore) Load(_ context.Context, userID uuid.UUID, slot string) (models.Draft, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[draftKey(userID, slot)]
	return d, ok, nil
}

func (s *MemoryDraftStore) Save(_ context.Context, userID uuid.UUID, slot string, draft models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draftKey(userID, slot)] = draft
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, userID uuid.UUID, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(userID, slot))
	return nil
}
