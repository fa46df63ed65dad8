package models

import "regexp"

// DefaultDraftSlot - слот черновика процесса создания истории.
const DefaultDraftSlot = "story-storage"

var draftSlotPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// IsValidDraftSlot проверяет имя слота.
func IsValidDraftSlot(slot string) bool {
	return draftSlotPattern.MatchString(slot)
}

// Draft - незавершенный выбор пользователя между шагами создания истории.
type Draft struct {
	SelectedCharacter   *CharacterProfile `json:"selectedCharacter"`
	SelectedGenre       string            `json:"selectedGenre"`
	SelectedStoryPrompt *StoryPrompt      `json:"selectedStoryPrompt"`
	ChapterContext      *ChapterContext   `json:"chapterContext"`
}

// Названия полей черновика для DraftPatch.Clear.
const (
	DraftFieldCharacter      = "selectedCharacter"
	DraftFieldGenre          = "selectedGenre"
	DraftFieldStoryPrompt    = "selectedStoryPrompt"
	DraftFieldChapterContext = "chapterContext"
)

// DraftPatch - точечное изменение черновика. Заданные поля заменяются,
// поля из Clear сбрасываются.
type DraftPatch struct {
	SelectedCharacter   *CharacterProfile `json:"selectedCharacter"`
	SelectedGenre       *string           `json:"selectedGenre"`
	SelectedStoryPrompt *StoryPrompt      `json:"selectedStoryPrompt"`
	ChapterContext      *ChapterContext   `json:"chapterContext"`
	Clear               []string          `json:"clear"`
}

// Apply применяет изменения к черновику.
func (p DraftPatch) Apply(d Draft) Draft {
	for _, field := range p.Clear {
		switch field {
		case DraftFieldCharacter:
			d.SelectedCharacter = nil
		case DraftFieldGenre:
			d.SelectedGenre = ""
		case DraftFieldStoryPrompt:
			d.SelectedStoryPrompt = nil
		case DraftFieldChapterContext:
			d.ChapterContext = nil
		}
	}
	if p.SelectedCharacter != nil {
		d.SelectedCharacter = p.SelectedCharacter
	}
	if p.SelectedGenre != nil {
		d.SelectedGenre = *p.SelectedGenre
	}
	if p.SelectedStoryPrompt != nil {
		d.SelectedStoryPrompt = p.SelectedStoryPrompt
	}
	if p.ChapterContext != nil {
		d.ChapterContext = p.ChapterContext
	}
	return d
}
