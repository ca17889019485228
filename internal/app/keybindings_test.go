package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultKeybindings(t *testing.T) {
	bindings := DefaultKeybindings()
	if got := bindings.KeyFor(KeyCommandToggleSidebar, ""); got != "ctrl+b" {
		t.Fatalf("expected ctrl+b for toggle sidebar, got %q", got)
	}
	if got := bindings.KeyFor(KeyCommandQuit, ""); got != "q" {
		t.Fatalf("expected q for quit, got %q", got)
	}
	if got := bindings.Remap("x"); got != "x" {
		t.Fatalf("expected unmapped key to pass through, got %q", got)
	}
}

func TestKeybindingOverridesAndRemap(t *testing.T) {
	bindings := NewKeybindings(map[string]string{
		KeyCommandToggleSidebar: "ctrl+s",
	})
	if got := bindings.KeyFor(KeyCommandToggleSidebar, ""); got != "ctrl+s" {
		t.Fatalf("expected override ctrl+s, got %q", got)
	}
	if got := bindings.Remap("ctrl+s"); got != "ctrl+b" {
		t.Fatalf("expected remap to canonical ctrl+b, got %q", got)
	}
	if got := bindings.Remap("ctrl+b"); got != "ctrl+b" {
		t.Fatalf("expected canonical key untouched, got %q", got)
	}
}

func TestKeybindingAmbiguousOverrideDropped(t *testing.T) {
	bindings := NewKeybindings(map[string]string{
		KeyCommandToggleSidebar: "z",
		KeyCommandRefresh:       "z",
	})
	// Two commands on the same key cannot be remapped deterministically.
	if got := bindings.Remap("z"); got != "z" {
		t.Fatalf("expected ambiguous key to pass through, got %q", got)
	}
}

func TestKeybindingUnknownCommandIgnored(t *testing.T) {
	bindings := NewKeybindings(map[string]string{
		"ui.noSuchCommand": "z",
	})
	if got := bindings.Remap("z"); got != "z" {
		t.Fatalf("expected unknown command override to be ignored, got %q", got)
	}
}

func TestKeybindingLegacyAliasNormalized(t *testing.T) {
	bindings := NewKeybindings(map[string]string{
		KeyCommandCopyLink: "y",
	})
	if got := bindings.KeyFor(KeyCommandCopyProjectLink, ""); got != "y" {
		t.Fatalf("expected legacy alias to land on copyProjectLink, got %q", got)
	}
	if got := bindings.KeyFor(KeyCommandCopyLink, ""); got != "y" {
		t.Fatalf("expected alias lookup to normalize, got %q", got)
	}
}

func TestLoadKeybindingsMissingFileUsesDefaults(t *testing.T) {
	bindings, err := LoadKeybindings(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if got := bindings.KeyFor(KeyCommandRefresh, ""); got != "r" {
		t.Fatalf("expected default refresh binding, got %q", got)
	}
}

func TestLoadKeybindingsObjectForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	payload := `{"ui.toggleSidebar": "ctrl+t", "ui.quit": ""}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write keybindings: %v", err)
	}
	bindings, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("load keybindings: %v", err)
	}
	if got := bindings.KeyFor(KeyCommandToggleSidebar, ""); got != "ctrl+t" {
		t.Fatalf("expected ctrl+t, got %q", got)
	}
	if got := bindings.KeyFor(KeyCommandQuit, ""); got != "q" {
		t.Fatalf("expected empty override to keep default, got %q", got)
	}
}

func TestLoadKeybindingsArrayForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	payload := `[{"command": "ui.refresh", "key": "f5"}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write keybindings: %v", err)
	}
	bindings, err := LoadKeybindings(path)
	if err != nil {
		t.Fatalf("load keybindings: %v", err)
	}
	if got := bindings.KeyFor(KeyCommandRefresh, ""); got != "f5" {
		t.Fatalf("expected f5, got %q", got)
	}
	if got := bindings.Remap("f5"); got != "r" {
		t.Fatalf("expected f5 to remap to r, got %q", got)
	}
}

func TestLoadKeybindingsRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write keybindings: %v", err)
	}
	if _, err := LoadKeybindings(path); err == nil {
		t.Fatalf("expected error for malformed keymap file")
	}
}

func TestBindingsListsEveryCommand(t *testing.T) {
	bindings := DefaultKeybindings().Bindings()
	if len(bindings) != len(defaultKeybindingByCommand) {
		t.Fatalf("expected %d bindings, got %d", len(defaultKeybindingByCommand), len(bindings))
	}
	for command, key := range defaultKeybindingByCommand {
		if bindings[command] != key {
			t.Fatalf("expected %s bound to %q, got %q", command, key, bindings[command])
		}
	}
}
