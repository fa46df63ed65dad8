package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftPatch_Apply(t *testing.T) {
	genre := "rofan"
	d := Draft{
		SelectedCharacter:   &CharacterProfile{Name: "Aria"},
		SelectedStoryPrompt: &StoryPrompt{Title: "old"},
	}

	d = DraftPatch{SelectedGenre: &genre}.Apply(d)
	assert.Equal(t, "rofan", d.SelectedGenre)
	assert.Equal(t, "Aria", d.SelectedCharacter.Name)

	d = DraftPatch{Clear: []string{DraftFieldStoryPrompt, "unknown"}}.Apply(d)
	assert.Nil(t, d.SelectedStoryPrompt)
	assert.NotNil(t, d.SelectedCharacter)
}

func TestIsValidDraftSlot(t *testing.T) {
	assert.True(t, IsValidDraftSlot(DefaultDraftSlot))
	assert.True(t, IsValidDraftSlot("character_1"))
	assert.False(t, IsValidDraftSlot(""))
	assert.False(t, IsValidDraftSlot("../etc"))
	assert.False(t, IsValidDraftSlot("Upper"))
}
