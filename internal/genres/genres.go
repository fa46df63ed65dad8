// Package genres - каталог жанров, вшитый в бинарник.
package genres

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed genres.yaml
var catalogYAML []byte

// Genre - жанр экрана создания истории.
type Genre struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Icon        string   `yaml:"icon" json:"icon"`
	Examples    []string `yaml:"examples" json:"examples"`
}

// Catalog - неизменяемый список жанров с поиском по id.
type Catalog struct {
	genres []Genre
	byID   map[string]int
}

// Load разбирает встроенный каталог.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse разбирает каталог из YAML. id должны быть уникальны и непусты.
func Parse(data []byte) (*Catalog, error) {
	var list []Genre
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse genre catalog: %w", err)
	}
	if len(list) == 0 {
		return nil, errors.New("genre catalog is empty")
	}

	c := &Catalog{genres: list, byID: make(map[string]int, len(list))}
	for i, g := range list {
		if g.ID == "" || g.Title == "" {
			return nil, fmt.Errorf("genre #%d: id and title are required", i+1)
		}
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate genre id %q", g.ID)
		}
		c.byID[g.ID] = i
	}
	return c, nil
}

// List возвращает копию каталога.
func (c *Catalog) List() []Genre {
	out := make([]Genre, len(c.genres))
	copy(out, c.genres)
	return out
}

// Get ищет жанр по id.
func (c *Catalog) Get(id string) (Genre, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Genre{}, false
	}
	return c.genres[i], true
}

// Titles заменяет id жанров их названиями. Неизвестные значения
// (клиент мог прислать название или свой жанр) остаются как есть.
func (c *Catalog) Titles(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if g, ok := c.Get(v); ok {
			out = append(out, g.Title)
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
