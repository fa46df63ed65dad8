package models

// StoryPrompt - вариант завязки истории от AI.
type StoryPrompt struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
}

// IsComplete сообщает, что все поля заполнены.
func (p StoryPrompt) IsComplete() bool {
	return p.Title != "" && p.Description != "" && p.Preview != ""
}

// GeneratePromptsRequest - тело POST /api/ai/generate-prompts.
type GeneratePromptsRequest struct {
	Character *CharacterProfile `json:"character"`
	Genre     GenreList         `json:"genre"`
}

// CurrentChapter - текущий черновик главы.
type CurrentChapter struct {
	Content  string `json:"content"`
	Sequence int    `json:"sequence"`
}

// PreviousChapterSummary - сводка предыдущей главы.
type PreviousChapterSummary struct {
	Summary   string   `json:"summary"`
	KeyEvents []string `json:"keyEvents"`
}

// CharacterState - снимок состояния персонажа.
type CharacterState struct {
	Name          string   `json:"name"`
	Stats         Stats    `json:"stats"`
	CurrentStatus []string `json:"currentStatus,omitempty"`
}

// StorySummary - накопленная сводка истории.
type StorySummary struct {
	Title         string   `json:"title"`
	Genre         string   `json:"genre"`
	MainEvents    []string `json:"mainEvents"`
	WorldSettings []string `json:"worldSettings,omitempty"`
}

// ChapterContext - контекст, который клиент передает при каждом запросе продолжения.
type ChapterContext struct {
	CurrentChapter  CurrentChapter          `json:"currentChapter"`
	PreviousChapter *PreviousChapterSummary `json:"previousChapter,omitempty"`
	CharacterState  CharacterState          `json:"characterState"`
	StorySummary    *StorySummary           `json:"storySummary,omitempty"`
}

// GenerateSuggestionsRequest - тело POST /api/ai/generate-suggestions.
type GenerateSuggestionsRequest struct {
	Title          string            `json:"title"`
	Character      *CharacterProfile `json:"character"`
	Genre          GenreList         `json:"genre"`
	Content        string            `json:"content"`
	ChapterContext *ChapterContext   `json:"chapterContext"`
	Preview        string            `json:"preview"`
}

// ChapterSummary - итог главы, который AI может вернуть вместе с вариантами.
type ChapterSummary struct {
	KeyEvents            []string `json:"keyEvents"`
	CharacterDevelopment []string `json:"characterDevelopment"`
}

// SuggestionsResult - ответ POST /api/ai/generate-suggestions.
type SuggestionsResult struct {
	Suggestions    []string        `json:"suggestions"`
	ChapterSummary *ChapterSummary `json:"chapter_summary,omitempty"`
}
