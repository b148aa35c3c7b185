// Package prefs persists the user's search preferences in a small TOML file,
// by default ~/.config/learnlink/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/learnlink/learnlink/internal/filex"
)

type Prefs struct {
	// AIMode routes searches to /aiinfo and asks for AI recommendations.
	AIMode     bool     `toml:"ai_mode"`
	Platforms  []string `toml:"platforms"`
	MaxResults int      `toml:"max_results"`
	// Plain disables terminal colors.
	Plain bool `toml:"plain"`
}

const (
	defaultPath       = "~/.config/learnlink/prefs.toml"
	defaultMaxResults = 10
)

var defaultPlatforms = []string{"youtube", "web"}

func DefaultPath() string {
	return defaultPath
}

func Defaults() Prefs {
	return Prefs{
		Platforms:  append([]string(nil), defaultPlatforms...),
		MaxResults: defaultMaxResults,
	}
}

// RecommendationMode is the ?mode= value matching AIMode.
func (p Prefs) RecommendationMode() string {
	if p.AIMode {
		return "ai"
	}
	return "traditional"
}

// Load reads preferences from path. A missing or unreadable file yields
// the defaults; preferences never stop the client from starting.
func Load(path string) (Prefs, error) {
	p := Defaults()

	b, err := os.ReadFile(resolvePath(path))
	if err != nil {
		return p, nil
	}
	if err := toml.Unmarshal(b, &p); err != nil {
		return Defaults(), nil
	}

	return p.Normalized(), nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := filex.EnsureParentDir(resolvePath(path))
	if err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	b, err := toml.Marshal(p.Normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, b, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Normalized lower-cases platforms and fills in defaults for empty fields.
func (p Prefs) Normalized() Prefs {
	platforms := make([]string, 0, len(p.Platforms))
	for _, pl := range p.Platforms {
		if pl = strings.ToLower(strings.TrimSpace(pl)); pl != "" {
			platforms = append(platforms, pl)
		}
	}
	if len(platforms) == 0 {
		platforms = append(platforms, defaultPlatforms...)
	}
	p.Platforms = platforms
	if p.MaxResults <= 0 {
		p.MaxResults = defaultMaxResults
	}
	return p
}

func resolvePath(path string) string {
	if strings.TrimSpace(path) == "" {
		path = defaultPath
	}
	return filepath.Clean(filex.ExpandHome(strings.TrimSpace(path)))
}
