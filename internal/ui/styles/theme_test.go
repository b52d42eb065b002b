package styles

import (
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/ngm/internal/config"
)

// Theme tests mutate package globals and must not run in parallel.

func TestInit_DefaultTheme(t *testing.T) {
	Init(config.ThemeConfig{Mode: "dark"})
	defer Init(config.ThemeConfig{Mode: "dark"})

	theme := Current()
	if theme.Primary != lipgloss.Color("62") {
		t.Errorf("expected default primary color 62, got %v", theme.Primary)
	}
	if theme.Warning != lipgloss.Color("214") {
		t.Errorf("expected default warning color 214, got %v", theme.Warning)
	}
}

func TestInit_PresetTheme(t *testing.T) {
	defer Init(config.ThemeConfig{Mode: "dark"})

	tests := []struct {
		preset string
		mode   string
		want   string
	}{
		{"dracula", "dark", "#8be9fd"},
		{"nord", "dark", "#88c0d0"},
		{"nord", "light", "#5e81ac"},
		{"gruvbox", "light", "#076678"},
		{"catppuccin", "dark", "#89dceb"},
		{"dracula", "light", "#8be9fd"}, // no light variant, falls back to dark
	}

	for _, tt := range tests {
		t.Run(tt.preset+"-"+tt.mode, func(t *testing.T) {
			Init(config.ThemeConfig{Name: tt.preset, Mode: tt.mode})
			if got := Current().Primary; got != lipgloss.Color(tt.want) {
				t.Errorf("expected primary %s, got %v", tt.want, got)
			}
		})
	}
}

func TestInit_PresetWithOverride(t *testing.T) {
	defer Init(config.ThemeConfig{Mode: "dark"})

	Init(config.ThemeConfig{Name: "nord", Mode: "dark", Warning: "#123456"})

	theme := Current()
	if theme.Primary != lipgloss.Color("#88c0d0") {
		t.Errorf("expected nord primary color, got %v", theme.Primary)
	}
	if theme.Warning != lipgloss.Color("#123456") {
		t.Errorf("expected custom warning color, got %v", theme.Warning)
	}
	if WarningStyle.GetForeground() != lipgloss.Color("#123456") {
		t.Errorf("expected WarningStyle to follow override, got %v", WarningStyle.GetForeground())
	}
}

func TestInit_SetsNerdfont(t *testing.T) {
	defer Init(config.ThemeConfig{Mode: "dark"})

	Init(config.ThemeConfig{Mode: "dark", Nerdfont: true})
	if !NerdfontEnabled() {
		t.Error("expected nerdfont to be enabled")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("dracula") == nil {
		t.Error("expected dracula preset to exist")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestThemeFamiliesMatchConfig(t *testing.T) {
	for _, name := range config.ValidThemeNames {
		if _, ok := themeFamilies[name]; !ok {
			t.Errorf("config allows theme %q without a preset", name)
		}
	}
	if len(themeFamilies) != len(config.ValidThemeNames) {
		t.Errorf("expected %d families, got %d", len(config.ValidThemeNames), len(themeFamilies))
	}
}
