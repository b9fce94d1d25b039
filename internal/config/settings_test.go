package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreSane(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 4, s.Editor.TabSize)
	assert.True(t, s.Editor.ShowGitDiff)
	assert.Equal(t, "en", s.General.Language)
	assert.Equal(t, "default", s.Theme)
}

func TestSaveThenLoadSettingsRoundTrips(t *testing.T) {
	ConfigDir = t.TempDir()
	s := DefaultSettings()
	s.Editor.TabSize = 2
	s.Theme = "solarized"
	require.NoError(t, SaveSettings(s))

	loaded := LoadSettings()
	assert.Equal(t, 2, loaded.Editor.TabSize)
	assert.Equal(t, "solarized", loaded.Theme)
}

func TestLoadSettingsFallsBackToDefaultsWhenMissing(t *testing.T) {
	ConfigDir = t.TempDir()
	s := LoadSettings()
	assert.Equal(t, DefaultSettings().Editor.TabSize, s.Editor.TabSize)
}

func TestValidateSettingsTextRejectsOutOfRangeTabSize(t *testing.T) {
	_, errs := ValidateSettingsText(`{"editor": {"tab_size": 99}}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "editor.tab_size", errs[0].Field)
}

func TestValidateSettingsTextAcceptsJson5Comments(t *testing.T) {
	text := `{
		// tab width
		"editor": { "tab_size": 2 },
	}`
	s, errs := ValidateSettingsText(text)
	require.Empty(t, errs)
	assert.Equal(t, 2, s.Editor.TabSize)
}

func TestValidateEditorTextWrapsFieldErrors(t *testing.T) {
	err := ValidateEditorText(`{"file_manager": {"sort_by": "bogus"}}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_manager.sort_by")
}

func TestIsSettingsFileMatchesConfiguredPath(t *testing.T) {
	ConfigDir = t.TempDir()
	assert.True(t, IsSettingsFile(SettingsFilePath()))
	assert.False(t, IsSettingsFile(filepath.Join(ConfigDir, "other.json")))
}
