package app

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"
)

const (
	KeyCommandQuit            = "ui.quit"
	KeyCommandToggleSidebar   = "ui.toggleSidebar"
	KeyCommandRefresh         = "ui.refresh"
	KeyCommandCopyProjectLink = "ui.copyProjectLink"
	KeyCommandCopyProjectID   = "ui.copyProjectID"
	KeyCommandSetActive       = "ui.setActiveProject"
	KeyCommandCopyLink        = "ui.copyLink" // legacy alias; normalized to ui.copyProjectLink
)

var defaultKeybindingByCommand = map[string]string{
	KeyCommandQuit:            "q",
	KeyCommandToggleSidebar:   "ctrl+b",
	KeyCommandRefresh:         "r",
	KeyCommandCopyProjectLink: "c",
	KeyCommandCopyProjectID:   "ctrl+g",
	KeyCommandSetActive:       "enter",
}

type Keybindings struct {
	byCommand map[string]string
	remap     map[string]string
}

type keybindingEntry struct {
	Command string `json:"command"`
	Key     string `json:"key"`
}

func DefaultKeybindings() *Keybindings {
	return NewKeybindings(nil)
}

func NewKeybindings(overrides map[string]string) *Keybindings {
	byCommand := make(map[string]string, len(defaultKeybindingByCommand))
	for command, key := range defaultKeybindingByCommand {
		byCommand[command] = key
	}
	for command, key := range normalizeKeybindingOverrides(overrides) {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := defaultKeybindingByCommand[command]; !ok {
			continue
		}
		byCommand[command] = key
	}
	remap := map[string]string{}
	ambiguous := map[string]struct{}{}
	commands := make([]string, 0, len(defaultKeybindingByCommand))
	for command := range defaultKeybindingByCommand {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	for _, command := range commands {
		defaultKey := defaultKeybindingByCommand[command]
		key := byCommand[command]
		if strings.TrimSpace(key) == "" || key == defaultKey {
			continue
		}
		if _, bad := ambiguous[key]; bad {
			continue
		}
		if existing, ok := remap[key]; ok && existing != defaultKey {
			delete(remap, key)
			ambiguous[key] = struct{}{}
			continue
		}
		remap[key] = defaultKey
	}
	return &Keybindings{
		byCommand: byCommand,
		remap:     remap,
	}
}

func LoadKeybindings(path string) (*Keybindings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultKeybindings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultKeybindings(), nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return DefaultKeybindings(), nil
	}
	overrides, err := parseKeybindingOverrides(data)
	if err != nil {
		return nil, err
	}
	return NewKeybindings(overrides), nil
}

func (k *Keybindings) KeyFor(command, fallback string) string {
	command = normalizeKeybindingCommand(command)
	if command == "" {
		return fallback
	}
	if k != nil {
		if key := strings.TrimSpace(k.byCommand[command]); key != "" {
			return key
		}
	}
	if key := strings.TrimSpace(defaultKeybindingByCommand[command]); key != "" {
		return key
	}
	return fallback
}

func (k *Keybindings) Bindings() map[string]string {
	out := make(map[string]string, len(defaultKeybindingByCommand))
	for _, command := range KnownKeybindingCommands() {
		out[command] = k.KeyFor(command, defaultKeybindingByCommand[command])
	}
	return out
}

// Remap translates a pressed key back to the default key of the command
// bound to it, so the update loop can keep matching on canonical keys.
func (k *Keybindings) Remap(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return key
	}
	if k != nil {
		if canonical, ok := k.remap[key]; ok && canonical != "" {
			return canonical
		}
	}
	return key
}

func parseKeybindingOverrides(data []byte) (map[string]string, error) {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var entries []keybindingEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		out := map[string]string{}
		for _, entry := range entries {
			command := normalizeKeybindingCommand(entry.Command)
			if command == "" {
				continue
			}
			if _, ok := defaultKeybindingByCommand[command]; !ok {
				continue
			}
			key := strings.TrimSpace(entry.Key)
			if key == "" {
				continue
			}
			out[command] = key
		}
		return out, nil
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := map[string]string{}
	for command, key := range raw {
		command = normalizeKeybindingCommand(command)
		if command == "" {
			continue
		}
		if _, ok := defaultKeybindingByCommand[command]; !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[command] = key
	}
	return out, nil
}

func normalizeKeybindingCommand(command string) string {
	command = strings.TrimSpace(command)
	switch command {
	case KeyCommandCopyLink:
		return KeyCommandCopyProjectLink
	default:
		return command
	}
}

func normalizeKeybindingOverrides(overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(overrides))
	for command, key := range overrides {
		command = normalizeKeybindingCommand(command)
		if command == "" {
			continue
		}
		normalized[command] = key
	}
	return normalized
}

func KnownKeybindingCommands() []string {
	keys := make([]string, 0, len(defaultKeybindingByCommand))
	for command := range defaultKeybindingByCommand {
		keys = append(keys, command)
	}
	sort.Strings(keys)
	return keys
}
