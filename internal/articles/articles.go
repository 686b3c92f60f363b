// Package articles holds the static medical articles shown in the articles
// section. The content ships embedded in the binary as YAML.
package articles

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed articles.yaml
var embedded []byte

// Item is one list entry. Label, when set, is shown in bold before Text.
type Item struct {
	Label string `yaml:"label" json:"label,omitempty"`
	Text  string `yaml:"text" json:"text"`
}

// Block is a heading followed by an optional paragraph and list. Sub marks a
// second-level heading.
type Block struct {
	Heading string `yaml:"heading" json:"heading"`
	Sub     bool   `yaml:"sub" json:"sub,omitempty"`
	Text    string `yaml:"text" json:"text,omitempty"`
	Ordered bool   `yaml:"ordered" json:"ordered,omitempty"`
	Items   []Item `yaml:"items" json:"items,omitempty"`
}

type Article struct {
	ID     string  `yaml:"id" json:"id"`
	Title  string  `yaml:"title" json:"title"`
	Blocks []Block `yaml:"blocks" json:"blocks"`
}

// Library is the whole articles section.
type Library struct {
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Articles    []Article `yaml:"articles" json:"articles"`
}

// Parse decodes a YAML library. Every article needs an id and a title.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse articles: %w", err)
	}
	if len(lib.Articles) == 0 {
		return nil, errors.New("parse articles: no articles")
	}
	for i, a := range lib.Articles {
		if a.ID == "" || a.Title == "" {
			return nil, fmt.Errorf("parse articles: article %d missing id or title", i)
		}
	}
	return &lib, nil
}

var (
	once    sync.Once
	library *Library
	loadErr error
)

// Load parses the embedded library on first use and returns the same value
// afterwards.
func Load() (*Library, error) {
	once.Do(func() {
		library, loadErr = Parse(embedded)
	})
	return library, loadErr
}
