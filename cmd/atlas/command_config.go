package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	"atlas/internal/app"
	"atlas/internal/config"

	toml "github.com/pelletier/go-toml/v2"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"

	configScopeCore        = "core"
	configScopeUI          = "ui"
	configScopeKeybindings = "keybindings"
)

type configOutput struct {
	CoreConfigPath  string                  `json:"core_config_path,omitempty" toml:"core_config_path,omitempty"`
	UIConfigPath    string                  `json:"ui_config_path,omitempty" toml:"ui_config_path,omitempty"`
	KeybindingsPath string                  `json:"keybindings_path,omitempty" toml:"keybindings_path,omitempty"`
	Studio          *effectiveStudioConfig  `json:"studio,omitempty" toml:"studio,omitempty"`
	Logging         *effectiveLoggingConfig `json:"logging,omitempty" toml:"logging,omitempty"`
	UI              *effectiveUIConfig      `json:"ui,omitempty" toml:"ui,omitempty"`
	Keybindings     map[string]string       `json:"keybindings,omitempty" toml:"keybindings,omitempty"`
}

type effectiveStudioConfig struct {
	BaseURL   string `json:"base_url" toml:"base_url"`
	TokenPath string `json:"token_path" toml:"token_path"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveUIConfig struct {
	StartCollapsed bool `json:"start_collapsed" toml:"start_collapsed"`
}

type coreConfigOutput struct {
	Studio  effectiveStudioConfig  `json:"studio" toml:"studio"`
	Logging effectiveLoggingConfig `json:"logging" toml:"logging"`
}

type uiConfigOutput struct {
	StartCollapsed bool                      `json:"start_collapsed" toml:"start_collapsed"`
	Keybindings    uiKeybindingsConfigOutput `json:"keybindings" toml:"keybindings"`
}

type uiKeybindingsConfigOutput struct {
	Path string `json:"path,omitempty" toml:"path,omitempty"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		stdout: stdout,
		stderr: stderr,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	var scopes stringList
	fs.Var(&scopes, "scope", "scope to print: core|ui|keybindings|all (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	resolvedScopes, err := resolveConfigScopes(scopes)
	if err != nil {
		return err
	}
	payload, err := buildConfigOutput(*defaults, resolvedScopes)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, projectedConfigPayload(payload, resolvedScopes))
}

func buildConfigOutput(defaults bool, scopes map[string]struct{}) (configOutput, error) {
	out := configOutput{}

	includeCore := scopeSelected(scopes, configScopeCore)
	includeUI := scopeSelected(scopes, configScopeUI)
	includeKeybindings := scopeSelected(scopes, configScopeKeybindings)

	var uiCfg config.UIConfig
	var keybindingsPath string
	if includeUI || includeKeybindings {
		uiPath, err := config.UIConfigPath()
		if err != nil {
			return configOutput{}, err
		}
		if defaults {
			uiCfg = config.DefaultUIConfig()
		} else {
			uiCfg, err = config.LoadUIConfig()
			if err != nil {
				return configOutput{}, err
			}
		}
		keybindingsPath, err = uiCfg.ResolveKeybindingsPath()
		if err != nil {
			return configOutput{}, err
		}
		if includeUI {
			out.UIConfigPath = uiPath
			out.KeybindingsPath = keybindingsPath
			out.UI = &effectiveUIConfig{
				StartCollapsed: uiCfg.StartCollapsed,
			}
		}
	}

	if includeCore {
		corePath, err := config.CoreConfigPath()
		if err != nil {
			return configOutput{}, err
		}
		var coreCfg config.CoreConfig
		if defaults {
			coreCfg = config.DefaultCoreConfig()
		} else {
			coreCfg, err = config.LoadCoreConfig()
			if err != nil {
				return configOutput{}, err
			}
		}
		tokenPath, err := coreCfg.ResolveTokenPath()
		if err != nil {
			return configOutput{}, err
		}
		out.CoreConfigPath = corePath
		out.Studio = &effectiveStudioConfig{
			BaseURL:   coreCfg.StudioBaseURL(),
			TokenPath: tokenPath,
		}
		out.Logging = &effectiveLoggingConfig{
			Level: coreCfg.LogLevel(),
		}
	}

	if includeKeybindings {
		var bindings *app.Keybindings
		var err error
		if defaults {
			bindings = app.DefaultKeybindings()
		} else {
			bindings, err = app.LoadKeybindings(keybindingsPath)
			if err != nil {
				return configOutput{}, err
			}
		}
		out.Keybindings = bindings.Bindings()
	}

	return out, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

// projectedConfigPayload unwraps the output when exactly one scope was asked
// for, so `--scope keybindings` prints the bare map instead of an envelope.
func projectedConfigPayload(payload configOutput, scopes map[string]struct{}) any {
	if len(scopes) != 1 {
		return payload
	}
	if scopeSelected(scopes, configScopeKeybindings) {
		if payload.Keybindings == nil {
			return map[string]string{}
		}
		return payload.Keybindings
	}
	if scopeSelected(scopes, configScopeUI) {
		out := uiConfigOutput{
			Keybindings: uiKeybindingsConfigOutput{
				Path: payload.KeybindingsPath,
			},
		}
		if payload.UI != nil {
			out.StartCollapsed = payload.UI.StartCollapsed
		}
		return out
	}
	if scopeSelected(scopes, configScopeCore) {
		out := coreConfigOutput{
			Logging: effectiveLoggingConfig{
				Level: "info",
			},
		}
		if payload.Studio != nil {
			out.Studio = *payload.Studio
		}
		if payload.Logging != nil {
			out.Logging = *payload.Logging
		}
		return out
	}
	return payload
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}

func resolveConfigScopes(values []string) (map[string]struct{}, error) {
	if len(values) == 0 {
		return map[string]struct{}{
			configScopeCore:        {},
			configScopeUI:          {},
			configScopeKeybindings: {},
		}, nil
	}
	out := map[string]struct{}{}
	for _, raw := range values {
		parts := strings.Split(raw, ",")
		for _, part := range parts {
			scope, err := normalizeConfigScope(part)
			if err != nil {
				return nil, err
			}
			if scope == "all" {
				return map[string]struct{}{
					configScopeCore:        {},
					configScopeUI:          {},
					configScopeKeybindings: {},
				}, nil
			}
			out[scope] = struct{}{}
		}
	}
	return out, nil
}

func normalizeConfigScope(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "all":
		return "all", nil
	case configScopeCore, "studio":
		return configScopeCore, nil
	case configScopeUI:
		return configScopeUI, nil
	case configScopeKeybindings, "keys":
		return configScopeKeybindings, nil
	default:
		return "", errors.New("invalid scope: must be core, ui, keybindings, or all")
	}
}

func scopeSelected(scopes map[string]struct{}, scope string) bool {
	_, ok := scopes[scope]
	return ok
}
