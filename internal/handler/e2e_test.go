package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"choicefiction/internal/database"
	"choicefiction/internal/genres"
	"choicefiction/internal/handler"
	"choicefiction/internal/interfaces"
	"choicefiction/internal/mocks"
	"choicefiction/internal/models"
	"choicefiction/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore - хранилище персонажей, историй и глав в памяти для сквозных тестов.
type memoryStore struct {
	mu         sync.Mutex
	characters map[uuid.UUID]models.Character
	stories    map[uuid.UUID]models.Story
	chapters   map[uuid.UUID]models.Chapter
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		characters: map[uuid.UUID]models.Character{},
		stories:    map[uuid.UUID]models.Story{},
		chapters:   map[uuid.UUID]models.Chapter{},
	}
}

type memoryCharacters struct{ *memoryStore }

var _ interfaces.CharacterRepository = memoryCharacters{}

func (m memoryCharacters) Create(_ context.Context, c *models.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.characters {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return models.ErrCharacterNameTaken
		}
	}
	c.ID = uuid.New()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	m.characters[c.ID] = *c
	return nil
}

func (m memoryCharacters) GetByID(_ context.Context, id uuid.UUID) (*models.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.characters[id]
	if !ok {
		return nil, models.ErrCharacterNotFound
	}
	return &c, nil
}

func (m memoryCharacters) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Character, error) {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, models.ErrCharacterNotFound
	}
	return c, nil
}

func (m memoryCharacters) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Character
	for _, c := range m.characters {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memoryCharacters) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.characters {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type memoryStories struct{ *memoryStore }

var _ interfaces.StoryRepository = memoryStories{}

func (m memoryStories) Create(_ context.Context, s *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt, s.UpdatedAt = time.Now(), time.Now()
	m.stories[s.ID] = *s
	return nil
}

func (m memoryStories) GetByID(_ context.Context, id uuid.UUID) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return nil, models.ErrStoryNotFound
	}
	return &s, nil
}

func (m memoryStories) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Story, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, models.ErrStoryNotFound
	}
	return s, nil
}

func (m memoryStories) list(match func(models.Story) bool) []models.Story {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Story
	for _, s := range m.stories {
		if match(s) {
			out = append(out, s)
		}
	}
	return out
}

func (m memoryStories) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Story, error) {
	return m.list(func(s models.Story) bool { return s.UserID == userID }), nil
}

func (m memoryStories) ListByCharacter(_ context.Context, characterID uuid.UUID) ([]models.Story, error) {
	return m.list(func(s models.Story) bool { return s.MainCharacterID == characterID }), nil
}

func (m memoryStories) Update(_ context.Context, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return nil, models.ErrStoryNotFound
	}
	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.Genre != nil {
		s.Genre = []string(*req.Genre)
	}
	if req.Status != nil {
		s.Status = *req.Status
	}
	s.UpdatedAt = time.Now()
	m.stories[id] = s
	return &s, nil
}

func (m memoryStories) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return models.ErrStoryNotFound
	}
	s.ViewCount++
	m.stories[id] = s
	return nil
}

func (m memoryStories) DeleteVotes(context.Context, interfaces.DBTX, uuid.UUID) (int64, error) {
	return 0, nil
}

func (m memoryStories) DeleteReviews(context.Context, interfaces.DBTX, uuid.UUID) (int64, error) {
	return 0, nil
}

func (m memoryStories) DeleteChoices(context.Context, interfaces.DBTX, uuid.UUID) (int64, error) {
	return 0, nil
}

func (m memoryStories) DeleteChapters(_ context.Context, _ interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, c := range m.chapters {
		if c.StoryID == storyID {
			delete(m.chapters, id)
			n++
		}
	}
	return n, nil
}

func (m memoryStories) Delete(_ context.Context, _ interfaces.DBTX, storyID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stories, storyID)
	return nil
}

type memoryChapters struct{ *memoryStore }

var _ interfaces.ChapterRepository = memoryChapters{}

func (m memoryChapters) Upsert(_ context.Context, c *models.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.chapters {
		if existing.StoryID == c.StoryID && existing.Sequence == c.Sequence {
			c.ID, c.CreatedAt = id, existing.CreatedAt
			c.UpdatedAt = time.Now()
			m.chapters[id] = *c
			return nil
		}
	}
	c.ID = uuid.New()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	m.chapters[c.ID] = *c
	return nil
}

func (m memoryChapters) GetByID(_ context.Context, id uuid.UUID) (*models.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chapters[id]
	if !ok {
		return nil, models.ErrChapterNotFound
	}
	return &c, nil
}

func (m memoryChapters) ListByStory(_ context.Context, storyID uuid.UUID) ([]models.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Chapter
	for _, c := range m.chapters {
		if c.StoryID == storyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (m memoryChapters) PreviousID(_ context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	chapters, _ := m.ListByStory(context.Background(), storyID)
	var prev *uuid.UUID
	for _, c := range chapters {
		if c.Sequence < sequence {
			id := c.ID
			prev = &id
		}
	}
	return prev, nil
}

func (m memoryChapters) NextID(_ context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	chapters, _ := m.ListByStory(context.Background(), storyID)
	for _, c := range chapters {
		if c.Sequence > sequence {
			id := c.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (m memoryChapters) Update(_ context.Context, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chapters[id]
	if !ok {
		return nil, models.ErrChapterNotFound
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Content != nil {
		c.Content = *req.Content
	}
	c.UpdatedAt = time.Now()
	m.chapters[id] = c
	return &c, nil
}

// fakeGoogle отвечает на обмен code и запрос профиля.
func fakeGoogle(t *testing.T, email string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"google-123","email":"` + email + `","picture":"https://example.com/p.png"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type e2eClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (e *e2eClient) do(method, path, body string) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: e.token})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestEndToEnd_SignInWriteAndNavigate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	google := fakeGoogle(t, "Writer@Example.com")

	users := new(mocks.MockUserRepository)
	var created *models.User
	users.On("GetUserByEmail", mock.Anything, "writer@example.com").Return(nil, models.ErrUserNotFound).Once()
	users.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(func(_ context.Context, u *models.User) error {
		u.ID = uuid.New()
		created = u
		return nil
	}).Once()
	users.On("LinkOAuthAccount", mock.Anything, mock.Anything, "google", "google-123").Return(nil).Once()

	tx := new(mocks.MockTransactionManager)
	tx.On("WithTransaction", mock.Anything).Return(nil)

	store := newMemoryStore()
	characterRepo, storyRepo, chapterRepo := memoryCharacters{store}, memoryStories{store}, memoryChapters{store}
	catalog, err := genres.Load()
	require.NoError(t, err)

	h := handler.NewHandler(handler.Services{
		Characters: service.NewCharacterService(characterRepo, storyRepo, logger),
		Stories: service.NewStoryService(service.StoryServiceDeps{
			Stories:    storyRepo,
			Characters: characterRepo,
			Chapters:   chapterRepo,
			Tx:         tx,
		}, logger),
		Chapters: service.NewChapterService(chapterRepo, storyRepo, nil, logger),
		Auth:     service.NewAuthService(users, "e2e-secret", time.Hour, logger),
		Drafts:   service.NewDraftService(database.NewMemoryDraftStore(), logger),
		Genres:   catalog,
	}, handler.Config{
		SessionTTL:    time.Hour,
		SessionSecret: "e2e-session-secret",
		Google: handler.OAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost/api/auth/google/callback",
			AuthURL:      google.URL + "/auth",
			TokenURL:     google.URL + "/token",
			UserInfoURL:  google.URL + "/userinfo",
		},
	}, logger)
	client := &e2eClient{t: t, router: handler.NewRouter(h, nil)}

	// Вход через Google.
	w := client.do(http.MethodGet, "/api/auth/google/login", "")
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	client.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/register/username", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			client.token = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	require.NotEmpty(t, client.token)
	require.NotNil(t, created)
	assert.Equal(t, "writer@example.com", created.Email)
	assert.True(t, created.HasPlaceholderUsername())

	session := decode[struct {
		User models.SessionUser `json:"user"`
	}](t, client.do(http.MethodGet, "/api/auth/session", ""))
	assert.Equal(t, created.ID, session.User.ID)
	assert.Equal(t, models.RoleFree, session.User.Role)

	// Персонаж, история и две главы.
	w = client.do(http.MethodPost, "/api/characters", `{"name":"Aria","gender":"여성","age":19,"appearance":"a","personality":"p","background":"b","stats":"{\"luck\":60,\"wit\":40}"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	character := decode[models.Character](t, w)
	assert.Equal(t, 60, character.Stats.Luck)

	w = client.do(http.MethodPost, "/api/characters/check-name", `{"name":"Aria"}`)
	assert.False(t, decode[models.NameAvailability](t, w).IsAvailable)

	w = client.do(http.MethodPost, "/api/stories", `{"title":"Test","description":"d","genre":["판타지"],"mainCharacterId":"`+character.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	story := decode[models.Story](t, w)
	assert.Equal(t, models.StoryStatusDraft, story.Status)

	w = client.do(http.MethodPost, "/api/chapters", `{"storyId":"`+story.ID.String()+`","sequence":1,"title":"Intro","content":"첫 줄\n둘째 줄"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[models.Chapter](t, w)

	w = client.do(http.MethodGet, "/api/chapters/"+first.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.ChapterView](t, w)
	assert.Nil(t, view.Navigation.PreviousChapterID)
	assert.Nil(t, view.Navigation.NextChapterID)
	assert.Equal(t, "Test", view.Story.Title)

	w = client.do(http.MethodPost, "/api/chapters", `{"storyId":"`+story.ID.String()+`","sequence":2,"title":"Next","content":"..."}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[models.Chapter](t, w)

	view = decode[models.ChapterView](t, client.do(http.MethodGet, "/api/chapters/"+first.ID.String(), ""))
	require.NotNil(t, view.Navigation.NextChapterID)
	assert.Equal(t, second.ID, *view.Navigation.NextChapterID)

	view = decode[models.ChapterView](t, client.do(http.MethodGet, "/api/chapters/"+second.ID.String(), ""))
	require.NotNil(t, view.Navigation.PreviousChapterID)
	assert.Equal(t, first.ID, *view.Navigation.PreviousChapterID)
	assert.Nil(t, view.Navigation.NextChapterID)

	// Повторное сохранение той же позиции обновляет главу.
	w = client.do(http.MethodPost, "/api/chapters", `{"storyId":"`+story.ID.String()+`","sequence":1,"title":"Intro v2","content":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first.ID, decode[models.Chapter](t, w).ID)

	// Анонимный читатель видит историю с главами.
	anonymous := &e2eClient{t: t, router: client.router}
	w = anonymous.do(http.MethodGet, "/api/stories/"+story.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	full := decode[models.Story](t, w)
	require.Len(t, full.Chapters, 2)
	assert.Equal(t, "Intro v2", full.Chapters[0].Title)
	require.NotNil(t, full.MainCharacter)
	assert.Equal(t, "Aria", full.MainCharacter.Name)

	w = client.do(http.MethodGet, "/api/stories", "")
	assert.Len(t, decode[[]models.Story](t, w), 1)

	// Удаление каскадом убирает главы.
	w = client.do(http.MethodDelete, "/api/stories/"+story.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusNotFound, client.do(http.MethodGet, "/api/chapters/"+second.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, anonymous.do(http.MethodGet, "/api/stories/"+story.ID.String(), "").Code)

	users.AssertExpectations(t)
}

func TestGeneratePrompts_UnusableModelOutput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	catalog, err := genres.Load()
	require.NoError(t, err)

	tests := []struct {
		name   string
		output string
		status int
	}{
		{name: "refusal object", output: `{"error":"content policy"}`, status: http.StatusInternalServerError},
		{name: "only incomplete prompts", output: `[{"title":"only title"}]`, status: http.StatusInternalServerError},
		{name: "empty wrapped array", output: `{"prompts":[]}`, status: http.StatusInternalServerError},
		{name: "empty body", output: "", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockAIClient)
			client.On("Generate", mock.Anything, mock.Anything).Return(tt.output, nil).Once()

			h := handler.NewHandler(handler.Services{
				Suggestions: service.NewSuggestionService(client, catalog, 0.7, time.Minute, zap.NewNop()),
				Genres:      catalog,
			}, handler.Config{SessionSecret: "prompts-secret"}, zap.NewNop())
			api := &e2eClient{t: t, router: handler.NewRouter(h, nil)}

			w := api.do(http.MethodPost, "/api/ai/generate-prompts", `{"character":{"name":"Aria"},"genre":"판타지"}`)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `[]`, w.Body.String())
			} else {
				assert.Equal(t, models.MsgPromptsFailed, decode[models.ErrorResponse](t, w).Error)
			}
			client.AssertExpectations(t)
		})
	}
}
