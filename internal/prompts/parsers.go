package prompts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"choicefiction/internal/models"
)

// ErrMalformedResponse - ответ модели не удалось разобрать.
var ErrMalformedResponse = errors.New("malformed AI response")

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON достает JSON из ответа модели: снимает markdown-ограждение
// и обрезает текст вокруг первой скобки.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := fencedBlock.FindStringSubmatch(raw); len(m) > 1 {
		raw = strings.TrimSpace(m[1])
	}
	if raw == "" || json.Valid([]byte(raw)) {
		return raw
	}

	start := strings.IndexAny(raw, "{[")
	if start == -1 {
		return raw
	}
	closing := "}"
	if raw[start] == '[' {
		closing = "]"
	}
	if end := strings.LastIndex(raw, closing); end > start {
		return raw[start : end+1]
	}
	return raw
}

// ParseStoryPrompts разбирает ответ на запрос завязок.
// Принимает голый массив или объект, в котором лежит массив; пустой ответ дает пустой список.
// Элементы без title, description или preview отбрасываются. Непустой ответ
// без единой полной завязки считается ошибкой.
func ParseStoryPrompts(raw string) ([]models.StoryPrompt, error) {
	data := []byte(ExtractJSON(raw))
	if len(data) == 0 {
		return []models.StoryPrompt{}, nil
	}

	items, err := promptItems(data)
	if err != nil {
		return nil, err
	}

	result := make([]models.StoryPrompt, 0, len(items))
	for _, item := range items {
		var p models.StoryPrompt
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		p.Title = strings.TrimSpace(p.Title)
		p.Description = strings.TrimSpace(p.Description)
		p.Preview = strings.TrimSpace(p.Preview)
		if p.IsComplete() {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no complete prompts", ErrMalformedResponse)
	}
	return result, nil
}

// promptItems возвращает элементы массива завязок.
func promptItems(data []byte) ([]json.RawMessage, error) {
	switch firstByte(data) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return items, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		// Сначала известные ключи, потом любой массив.
		for _, key := range []string{"prompts", "suggestions", "stories", "data", "items"} {
			if v, ok := obj[key]; ok && firstByte(v) == '[' {
				return promptItems(v)
			}
		}
		for _, v := range obj {
			if firstByte(v) == '[' {
				return promptItems(v)
			}
		}
		// Модель вернула одну завязку без массива.
		if _, ok := obj["title"]; ok {
			return []json.RawMessage{data}, nil
		}
		return nil, fmt.Errorf("%w: object without prompts array", ErrMalformedResponse)
	default:
		return nil, fmt.Errorf("%w: expected JSON array or object", ErrMalformedResponse)
	}
}

// ParseSuggestions разбирает ответ на запрос продолжений.
func ParseSuggestions(raw string) (*models.SuggestionsResult, error) {
	data := []byte(ExtractJSON(raw))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var aux struct {
		Suggestions    []json.RawMessage      `json:"suggestions"`
		ChapterSummary *models.ChapterSummary `json:"chapter_summary"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := &models.SuggestionsResult{Suggestions: make([]string, 0, len(aux.Suggestions))}
	for _, item := range aux.Suggestions {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			result.Suggestions = append(result.Suggestions, s)
		}
	}
	if len(result.Suggestions) == 0 {
		return nil, fmt.Errorf("%w: no suggestions", ErrMalformedResponse)
	}
	if cs := aux.ChapterSummary; cs != nil && (len(cs.KeyEvents) > 0 || len(cs.CharacterDevelopment) > 0) {
		result.ChapterSummary = cs
	}
	return result, nil
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}
