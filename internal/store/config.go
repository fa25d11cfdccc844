package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"loops-cli/internal/model"
)

type GlobalConfig struct {
	// ActivityTemplates seed new activities in the builder. Empty means DefaultActivityTemplates.
	ActivityTemplates []model.ActivityTemplate `json:"activityTemplates,omitempty"`

	Categories []model.Category `json:"categories,omitempty"`

	// TUI holds optional user preferences for the interactive builder.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is the appearance profile id ("default", "mono").
	Theme string `json:"theme,omitempty"`
}

// Templates returns the configured activity templates, or the built-in set when none are configured.
func (c *GlobalConfig) Templates() []model.ActivityTemplate {
	if c == nil || len(c.ActivityTemplates) == 0 {
		return DefaultActivityTemplates()
	}
	return append([]model.ActivityTemplate(nil), c.ActivityTemplates...)
}

// Category looks up a configured category by id.
func (c *GlobalConfig) Category(id string) (model.Category, bool) {
	if c == nil {
		return model.Category{}, false
	}
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

func (c *GlobalConfig) ThemeName() string {
	if c == nil || c.TUI == nil || strings.TrimSpace(c.TUI.Theme) == "" {
		return "default"
	}
	return strings.TrimSpace(c.TUI.Theme)
}

func DefaultActivityTemplates() []model.ActivityTemplate {
	return []model.ActivityTemplate{
		{ID: "tpl-focus", Name: "Focus block", Title: "Focus", Duration: 25, Icon: "🎯"},
		{ID: "tpl-break", Name: "Short break", Title: "Break", Duration: 5, Icon: "☕"},
		{ID: "tpl-stretch", Name: "Stretch", Title: "Stretch", Duration: 10, Icon: "🧘"},
		{ID: "tpl-review", Name: "Review", Title: "Review", Duration: 15, Icon: "📝", Checklist: []model.ChecklistItem{
			{Text: "Inbox zero"},
			{Text: "Plan next block"},
		}},
	}
}

// ValidateConfig reports the first structural problem in cfg.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return nil
	}
	seen := map[string]bool{}
	for i, t := range cfg.ActivityTemplates {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("activityTemplates[%d].name is empty", i)
		}
		id := strings.TrimSpace(t.ID)
		if id == "" {
			continue
		}
		if seen[id] {
			return fmt.Errorf("activityTemplates[%d].id %q is duplicated", i, id)
		}
		seen[id] = true
		if t.Duration < 0 {
			return fmt.Errorf("activityTemplates[%d].duration is negative", i)
		}
	}
	seen = map[string]bool{}
	for i, c := range cfg.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return fmt.Errorf("categories[%d].id is empty", i)
		}
		if seen[id] {
			return fmt.Errorf("categories[%d].id %q is duplicated", i, id)
		}
		seen[id] = true
	}
	return nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.loops).
	if v := strings.TrimSpace(os.Getenv("LOOPS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loops"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Keep the previous config around for manual recovery.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
