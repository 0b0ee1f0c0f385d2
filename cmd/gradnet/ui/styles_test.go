package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("GRADNET_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when GRADNET_DARK_MODE=1")
	}

	t.Setenv("GRADNET_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when GRADNET_DARK_MODE is unset")
	}
}

func TestThemeByName(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("GRADNET_DARK_MODE", "")

	if !ThemeByName("dark").IsDark {
		t.Error("ThemeByName(dark) must be dark")
	}
	if ThemeByName("light").IsDark {
		t.Error("ThemeByName(light) must be light")
	}
	if ThemeByName("solarized").IsDark {
		t.Error("unknown theme should fall through to detection (light here)")
	}
}
