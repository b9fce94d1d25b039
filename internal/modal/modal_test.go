package modal

import (
	"testing"

	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone, "")
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone, "")
}

func TestConfirmYesResolvesTrue(t *testing.T) {
	m := NewConfirm("Delete?", "Remove file.txt", "This cannot be undone", 80, 24)
	result, consumed := m.HandleKey(keyRune('y'))
	require.True(t, consumed)
	require.NotNil(t, result)
	assert.True(t, result.Confirmed)
	assert.True(t, result.Value)
	assert.False(t, m.Active)
}

func TestConfirmEscapeCancels(t *testing.T) {
	m := NewConfirm("Delete?", "Remove file.txt", "", 80, 24)
	result, _ := m.HandleKey(key(tcell.KeyEscape))
	require.NotNil(t, result)
	assert.False(t, result.Confirmed)
}

func TestInputTypingAndEnterReturnsValue(t *testing.T) {
	m := NewInput("New File", "Name:", "", 80, 24)
	for _, r := range "note.txt" {
		result, _ := m.HandleKey(keyRune(r))
		assert.Nil(t, result)
	}
	result, consumed := m.HandleKey(key(tcell.KeyEnter))
	require.True(t, consumed)
	require.NotNil(t, result)
	assert.True(t, result.Confirmed)
	assert.Equal(t, "note.txt", result.Value)
}

func TestInputBackspaceEditsAtCursor(t *testing.T) {
	m := NewInput("Rename", "Name:", "hello", 80, 24)
	m.HandleKey(key(tcell.KeyBackspace))
	result, _ := m.HandleKey(key(tcell.KeyEnter))
	require.NotNil(t, result)
	assert.Equal(t, "hell", result.Value)
}

func TestSelectArrowNavigationAndEnter(t *testing.T) {
	m := NewSelect("Pick", []string{"a", "b", "c"}, 80, 24)
	m.HandleKey(key(tcell.KeyDown))
	m.HandleKey(key(tcell.KeyDown))
	result, _ := m.HandleKey(key(tcell.KeyEnter))
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Value)
}

func TestSelectMouseClickOnSameRowConfirms(t *testing.T) {
	m := NewSelect("Pick", []string{"a", "b", "c"}, 80, 24)
	result, _ := m.HandleMouse(1, tcell.Button1)
	assert.Nil(t, result)
	assert.Equal(t, 1, m.Cursor)

	result, _ = m.HandleMouse(1, tcell.Button1)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Value)
}

func TestEditableSelectNarrowsByFuzzyQuery(t *testing.T) {
	m := NewEditableSelect("Tool", []string{"Shell (default)", "bash", "zsh", "fish"}, 80, 24)
	for _, r := range "fsh" {
		m.HandleKey(keyRune(r))
	}
	assert.Contains(t, m.filtered, "fish")
	result, _ := m.HandleKey(key(tcell.KeyEnter))
	require.NotNil(t, result)
	assert.Equal(t, "fish", result.Value)
}

func TestOverwriteHotkeysResolveWithoutMenuNavigation(t *testing.T) {
	m := NewOverwrite("/tmp/a.txt", 80, 24)
	result, _ := m.HandleKey(keyRune('a'))
	require.NotNil(t, result)
	assert.Equal(t, OverwriteAll, result.Value)
}

func TestConflictRenameDoesNotDropPendingAction(t *testing.T) {
	m := NewConflict("/tmp/a.txt", 80, 24)
	result, _ := m.HandleKey(keyRune('r'))
	require.NotNil(t, result)
	assert.Equal(t, ConflictRename, result.Value)
}

func TestRenamePatternEnterReturnsPattern(t *testing.T) {
	m := NewRenamePattern("backup-$0", 80, 24)
	result, _ := m.HandleKey(key(tcell.KeyEnter))
	require.NotNil(t, result)
	assert.Equal(t, "backup-$0", result.Value)
}

func TestSearchEmitsLiveResultOnEveryKeystroke(t *testing.T) {
	m := NewSearch(80, 24)
	result, _ := m.HandleKey(keyRune('f'))
	require.NotNil(t, result)
	assert.Equal(t, "f", result.Value)
	assert.True(t, m.Active)
}

func TestReplaceTabSwitchesFieldBeforeEnterCommitsBoth(t *testing.T) {
	m := NewReplace(80, 24)
	for _, r := range "foo" {
		m.HandleKey(keyRune(r))
	}
	m.HandleKey(key(tcell.KeyTab))
	for _, r := range "bar" {
		m.HandleKey(keyRune(r))
	}
	result, _ := m.HandleKey(key(tcell.KeyEnter))
	require.NotNil(t, result)
	assert.Equal(t, ReplaceQuery{Find: "foo", Replace: "bar"}, result.Value)
}

func TestInfoDismissesOnAnyKey(t *testing.T) {
	m := NewInfo("Saved", "Wrote 12 lines", 80, 24)
	result, consumed := m.HandleKey(keyRune('x'))
	require.True(t, consumed)
	require.NotNil(t, result)
	assert.False(t, m.Active)
}

func TestPendingActionIDsAreUnique(t *testing.T) {
	a := NewPendingAction(PendingBatchCopy, nil)
	b := NewPendingAction(PendingBatchCopy, nil)
	assert.NotEqual(t, a.ID, b.ID)
}
