// Package phrases loads the list of phrases played on the board.
//
// Lists come from a JSON or YAML file chosen by extension, or from the
// embedded default list when no file is configured.
package phrases

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitblaster/ruotafortuna/engine"
	"gopkg.in/yaml.v3"
)

//go:embed phrases.json
var embeddedPhrases []byte

// ErrEmpty is returned when a source yields no usable phrase.
var ErrEmpty = errors.New("phrase list is empty")

// Default returns the embedded phrase list.
func Default() ([]engine.Phrase, error) {
	return Parse(embeddedPhrases, ".json")
}

// Load reads path, or the embedded list when path is empty.
func Load(path string) ([]engine.Phrase, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phrases %s: %w", path, err)
	}
	list, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse phrases %s: %w", path, err)
	}
	return list, nil
}

// Parse decodes a phrase list. ext selects the format: ".yaml"/".yml" or JSON.
// Texts are uppercased, blank entries dropped and duplicate ids rejected.
func Parse(data []byte, ext string) ([]engine.Phrase, error) {
	var raw []engine.Phrase
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	seen := make(map[int]struct{}, len(raw))
	out := make([]engine.Phrase, 0, len(raw))
	for _, p := range raw {
		p.Text = strings.ToUpper(strings.Join(strings.Fields(p.Text), " "))
		if p.Text == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate phrase id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		p.Category = strings.TrimSpace(p.Category)
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Categories returns the distinct categories in first-seen order.
func Categories(list []engine.Phrase) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range list {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
