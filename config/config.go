package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFolderTemplate is the default session folder name template.
// Available placeholders: {{.Year}}, {{.Month}}, {{.Day}}, {{.Hour}}, {{.Minute}}, {{.Second}}, {{.Name}}
const DefaultFolderTemplate = "{{.Year}}-{{.Month}}-{{.Day}}_{{.Hour}}-{{.Minute}}-{{.Second}}{{if .Name}}_{{.Name}}{{end}}"

// Defaults for the editor core tunables.
const (
	DefaultStampLeadMs    = 5000
	DefaultDebounceMs     = 1000
	DefaultAutosaveSec    = 15
	DefaultHistoryLimit   = 50
	DefaultBlockSeparator = "\n"
)

type Config struct {
	NotesDir       string
	FolderTemplate string // Go template for session folder names

	// Editor core tunables
	StampLeadMs    int    // subtracted from "now" when auto-stamping a typed note
	DebounceMs     int    // typing idle window before a history checkpoint
	AutosaveSec    int    // rolling backup interval, 0 disables
	HistoryLimit   int    // max undo snapshots
	BlockSeparator string // separator in the serialized note text

	// Audio capture source for ffmpeg
	InputFormat string
	InputDevice string
}

type fileConfig struct {
	NotesDir       string `toml:"notes_dir"`
	FolderTemplate string `toml:"folder_template"`
	StampLeadMs    int    `toml:"stamp_lead_ms"`
	DebounceMs     int    `toml:"debounce_ms"`
	AutosaveSec    int    `toml:"autosave_sec"`
	HistoryLimit   int    `toml:"history_limit"`
	BlockSeparator string `toml:"block_separator"`
	InputFormat    string `toml:"input_format"`
	InputDevice    string `toml:"input_device"`
}

func Load() (*Config, error) {
	cfg := &Config{
		NotesDir:       defaultNotesDir(),
		FolderTemplate: DefaultFolderTemplate,
		StampLeadMs:    DefaultStampLeadMs,
		DebounceMs:     DefaultDebounceMs,
		AutosaveSec:    DefaultAutosaveSec,
		HistoryLimit:   DefaultHistoryLimit,
		BlockSeparator: DefaultBlockSeparator,
		InputFormat:    defaultInputFormat(),
		InputDevice:    defaultInputDevice(),
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.NotesDir != "" {
				cfg.NotesDir = expandTilde(fc.NotesDir)
			}
			if fc.FolderTemplate != "" {
				cfg.FolderTemplate = fc.FolderTemplate
			}
			if fc.StampLeadMs > 0 {
				cfg.StampLeadMs = fc.StampLeadMs
			}
			if fc.DebounceMs > 0 {
				cfg.DebounceMs = fc.DebounceMs
			}
			if fc.AutosaveSec > 0 {
				cfg.AutosaveSec = fc.AutosaveSec
			}
			if fc.HistoryLimit > 0 {
				cfg.HistoryLimit = fc.HistoryLimit
			}
			if fc.BlockSeparator != "" {
				cfg.BlockSeparator = fc.BlockSeparator
			}
			if fc.InputFormat != "" {
				cfg.InputFormat = fc.InputFormat
			}
			if fc.InputDevice != "" {
				cfg.InputDevice = fc.InputDevice
			}
		}
	}

	applyEnvOverrides(cfg)

	// Ensure directories exist
	if err := os.MkdirAll(cfg.NotesDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIVENOTES_DIR"); v != "" {
		cfg.NotesDir = expandTilde(v)
	}
	if v := os.Getenv("LIVENOTES_INPUT_FORMAT"); v != "" {
		cfg.InputFormat = v
	}
	if v := os.Getenv("LIVENOTES_INPUT_DEVICE"); v != "" {
		cfg.InputDevice = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "livenotes")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "livenotes")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultNotesDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "livenotes")
	}
	return filepath.Join(".", "livenotes")
}

func defaultInputFormat() string {
	if _, err := os.Stat("/usr/bin/pactl"); err == nil {
		return "pulse"
	}
	return "avfoundation"
}

func defaultInputDevice() string {
	if defaultInputFormat() == "pulse" {
		return "default"
	}
	return ":default"
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
