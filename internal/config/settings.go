package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/micro-editor/json5"
)

const settingsFileName = "settings.json5"

// EditorSettings is spec.md's editor.* config surface.
type EditorSettings struct {
	TabSize              int  `json:"tab_size"`
	WordWrap             bool `json:"word_wrap"`
	LargeFileThresholdMB int  `json:"large_file_threshold_mb"`
	ShowGitDiff          bool `json:"show_git_diff"`
}

// GeneralSettings is spec.md's general.* config surface.
type GeneralSettings struct {
	Language               string `json:"language"`
	DoubleClickThresholdMs int    `json:"double_click_threshold_ms"`
}

// FileManagerSettings is spec.md's file_manager.* config surface.
type FileManagerSettings struct {
	ShowHidden  bool     `json:"show_hidden"`
	SortBy      string   `json:"sort_by"`
	IgnoreGlobs []string `json:"ignore_globs"`
}

// Settings holds the full structured config file spec.md's ambient config
// layer describes, grounded on internal/thicc/settings.go's JSON loader but
// carrying the IDE-core fields instead of the teacher's terminal/appearance
// ones.
type Settings struct {
	Editor      EditorSettings      `json:"editor"`
	General     GeneralSettings     `json:"general"`
	Theme       string              `json:"theme"`
	FileManager FileManagerSettings `json:"file_manager"`
}

// GlobalSettings is the loaded settings instance, matching the teacher's
// package-level GlobalThiccSettings convention.
var GlobalSettings *Settings

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			TabSize:              4,
			WordWrap:             false,
			LargeFileThresholdMB: 10,
			ShowGitDiff:          true,
		},
		General: GeneralSettings{Language: "en", DoubleClickThresholdMs: DefaultDoubleClickThreshold},
		Theme:   "default",
		FileManager: FileManagerSettings{
			ShowHidden: false,
			SortBy:     "name",
		},
	}
}

// SettingsFilePath returns the path to the settings file within ConfigDir
// (InitConfigDir must have been called first).
func SettingsFilePath() string {
	return filepath.Join(ConfigDir, settingsFileName)
}

// LoadSettings loads settings from disk, falling back to defaults for a
// missing file or any field left zero-valued, matching the teacher's
// LoadSettings merge-with-defaults behavior.
func LoadSettings() *Settings {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsFilePath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("stacktile: failed to read %s: %v", settingsFileName, err)
		}
		GlobalSettings = settings
		return settings
	}

	if err := json5.Unmarshal(data, settings); err != nil {
		log.Printf("stacktile: failed to parse %s: %v", settingsFileName, err)
		GlobalSettings = DefaultSettings()
		return GlobalSettings
	}

	applyDefaults(settings)
	GlobalSettings = settings
	return settings
}

func applyDefaults(s *Settings) {
	if s.Editor.TabSize <= 0 {
		s.Editor.TabSize = DefaultSettings().Editor.TabSize
	}
	if s.Editor.LargeFileThresholdMB <= 0 {
		s.Editor.LargeFileThresholdMB = DefaultSettings().Editor.LargeFileThresholdMB
	}
	if s.General.Language == "" {
		s.General.Language = DefaultSettings().General.Language
	}
	if s.General.DoubleClickThresholdMs <= 0 {
		s.General.DoubleClickThresholdMs = DefaultDoubleClickThreshold
	}
	if s.Theme == "" {
		s.Theme = DefaultSettings().Theme
	}
	if s.FileManager.SortBy == "" {
		s.FileManager.SortBy = DefaultSettings().FileManager.SortBy
	}
}

// SaveSettings persists settings to disk as plain JSON (json5 is accepted
// on read for hand-edited comments/trailing commas, but writes stay strict
// JSON so the file round-trips through any JSON tool too).
func SaveSettings(s *Settings) error {
	if err := os.MkdirAll(ConfigDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(SettingsFilePath(), data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	GlobalSettings = s
	return nil
}

// ValidationError reports one malformed settings field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

// ValidateSettingsText parses and validates candidate settings-file text,
// accepting json5's relaxed syntax (comments, trailing commas) since that's
// what a hand-edited settings file actually contains.
func ValidateSettingsText(text string) (*Settings, []ValidationError) {
	var s Settings
	if err := json5.Unmarshal([]byte(text), &s); err != nil {
		return nil, []ValidationError{{Field: "json5", Message: "invalid syntax: " + err.Error()}}
	}
	return &s, validate(&s)
}

func validate(s *Settings) []ValidationError {
	var errs []ValidationError
	if s.Editor.TabSize < 0 || s.Editor.TabSize > 16 {
		errs = append(errs, ValidationError{Field: "editor.tab_size", Message: "must be between 0 and 16"})
	}
	if s.Editor.LargeFileThresholdMB < 0 {
		errs = append(errs, ValidationError{Field: "editor.large_file_threshold_mb", Message: "must be non-negative"})
	}
	if s.FileManager.SortBy != "" && s.FileManager.SortBy != "name" && s.FileManager.SortBy != "modified" && s.FileManager.SortBy != "size" {
		errs = append(errs, ValidationError{Field: "file_manager.sort_by", Message: "must be one of name, modified, size"})
	}
	return errs
}

// IsSettingsFile reports whether path is this process's settings file,
// for wiring into editor.ConfigFilePredicate so Engine.Save knows to
// schema-validate it before writing, matching spec.md 4.A's "validated as
// config on save" requirement.
func IsSettingsFile(path string) bool {
	abs, err1 := filepath.Abs(path)
	settingsAbs, err2 := filepath.Abs(SettingsFilePath())
	if err1 != nil || err2 != nil {
		return path == SettingsFilePath()
	}
	return abs == settingsAbs
}

// ValidateEditorText adapts ValidateSettingsText to editor.ConfigValidator's
// signature so it can be passed straight to Engine.Save.
func ValidateEditorText(text string) error {
	_, errs := ValidateSettingsText(text)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
