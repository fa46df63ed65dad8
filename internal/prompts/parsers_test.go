package prompts

import (
	"testing"

	"choicefiction/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStoryPrompts(t *testing.T) {
	full := `{"title":"회귀한 S급","description":"두 번째 인생","preview":"눈을 떴다."}`

	tests := []struct {
		name      string
		raw       string
		wantTitle []string
		wantErr   bool
	}{
		{name: "bare array", raw: "[" + full + "]", wantTitle: []string{"회귀한 S급"}},
		{name: "wrapped in object", raw: `{"prompts":[` + full + `]}`, wantTitle: []string{"회귀한 S급"}},
		{name: "unknown wrapper key", raw: `{"story_starts":[` + full + `]}`, wantTitle: []string{"회귀한 S급"}},
		{name: "single object", raw: full, wantTitle: []string{"회귀한 S급"}},
		{name: "markdown fence", raw: "```json\n[" + full + "]\n```", wantTitle: []string{"회귀한 S급"}},
		{name: "empty body", raw: "", wantTitle: []string{}},
		{
			name:      "incomplete elements dropped",
			raw:       `[` + full + `,{"title":"제목만"},{"title":"","description":"d","preview":"p"},42]`,
			wantTitle: []string{"회귀한 S급"},
		},
		{name: "malformed json", raw: `[{"title": "x",`, wantErr: true},
		{name: "object without array", raw: `{"note":"nothing"}`, wantErr: true},
		{name: "refusal object", raw: `{"error":"content policy"}`, wantErr: true},
		{name: "only incomplete elements", raw: `[{"title":"only title"}]`, wantErr: true},
		{name: "empty wrapped array", raw: `{"prompts":[]}`, wantErr: true},
		{name: "empty bare array", raw: `[]`, wantErr: true},
		{name: "plain text", raw: "죄송합니다, 답변할 수 없습니다.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStoryPrompts(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)

			titles := make([]string, 0, len(got))
			for _, p := range got {
				assert.True(t, p.IsComplete())
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.wantTitle, titles)
		})
	}
}

func TestParseSuggestions(t *testing.T) {
	t.Run("with summary", func(t *testing.T) {
		got, err := ParseSuggestions(`{"suggestions":["a","  ","b",1],"chapter_summary":{"keyEvents":["e"],"characterDevelopment":[]}}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got.Suggestions)
		require.NotNil(t, got.ChapterSummary)
		assert.Equal(t, []string{"e"}, got.ChapterSummary.KeyEvents)
	})

	t.Run("empty summary omitted", func(t *testing.T) {
		got, err := ParseSuggestions(`{"suggestions":["a"],"chapter_summary":{}}`)
		require.NoError(t, err)
		assert.Nil(t, got.ChapterSummary)
	})

	for name, raw := range map[string]string{
		"empty":          "",
		"no suggestions": `{"suggestions":[]}`,
		"broken":         `{"suggestions":["a"`,
		"array":          `["a","b"]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSuggestions(raw)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSON("Here you go:\n{\"a\":1}\nEnjoy"))
	assert.Equal(t, `[1,2]`, ExtractJSON("```\n[1,2]\n```"))
	assert.Equal(t, "", ExtractJSON("   "))
}

func TestStatLabelsCoverStats(t *testing.T) {
	stats := models.Stats{Appearance: 1, Charisma: 2, Speech: 3, Luck: 4, Wit: 5}
	sum := 0
	for _, l := range statLabels {
		sum += l.value(stats)
	}
	assert.Equal(t, stats.Total(), sum)
}
