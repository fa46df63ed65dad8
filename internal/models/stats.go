package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Границы значений характеристик.
const (
	StatMin   = 0
	StatMax   = 100
	StatTotal = 100
)

// Stats - блок из пяти характеристик персонажа.
// В БД хранится строкой JSON: Encode при записи, DecodeStats при чтении.
type Stats struct {
	Appearance int `json:"appearance" binding:"gte=0,lte=100"`
	Charisma   int `json:"charisma" binding:"gte=0,lte=100"`
	Speech     int `json:"speech" binding:"gte=0,lte=100"`
	Luck       int `json:"luck" binding:"gte=0,lte=100"`
	Wit        int `json:"wit" binding:"gte=0,lte=100"`
}

// Total - сумма всех характеристик.
func (s Stats) Total() int {
	return s.Appearance + s.Charisma + s.Speech + s.Luck + s.Wit
}

// Validate проверяет диапазон каждой характеристики и их сумму.
func (s Stats) Validate() error {
	for _, f := range s.fields() {
		if f.value < StatMin || f.value > StatMax {
			return NewValidationError(fmt.Sprintf("능력치 %s는 %d-%d 사이여야 합니다.", f.name, StatMin, StatMax))
		}
	}
	if s.Total() > StatTotal {
		return NewValidationError(MsgStatsSumExceeded)
	}
	return nil
}

type statField struct {
	name  string
	value int
}

func (s Stats) fields() []statField {
	return []statField{
		{"appearance", s.Appearance},
		{"charisma", s.Charisma},
		{"speech", s.Speech},
		{"luck", s.Luck},
		{"wit", s.Wit},
	}
}

// Encode сериализует блок для хранения.
func (s Stats) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode stats: %w", err)
	}
	return string(b), nil
}

// DecodeStats разбирает сохраненный блок. Пустое значение дает нулевой блок.
func DecodeStats(raw string) (Stats, error) {
	var s Stats
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return s, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode((*statsAlias)(&s)); err != nil {
		return Stats{}, fmt.Errorf("decode stats %q: %w", raw, err)
	}
	return s, nil
}

type statsAlias Stats

// UnmarshalJSON принимает как объект, так и строку с JSON объектом внутри:
// старые клиенты присылают stats уже сериализованным.
func (s *Stats) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		decoded, err := DecodeStats(raw)
		if err != nil {
			return err
		}
		*s = decoded
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, (*statsAlias)(s))
}

// Map возвращает характеристики в виде map для промптов.
func (s Stats) Map() map[string]int {
	m := make(map[string]int, 5)
	for _, f := range s.fields() {
		m[f.name] = f.value
	}
	return m
}
