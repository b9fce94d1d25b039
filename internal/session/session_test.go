package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ellery/stacktile/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDirIsStableForSameProjectRoot(t *testing.T) {
	withHome(t)
	a, err := Dir("/tmp/myproject")
	require.NoError(t, err)
	b, err := Dir("/tmp/myproject")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoadReturnsErrNoSessionWhenMissing(t *testing.T) {
	withHome(t)
	_, _, err := Load("/tmp/fresh-project")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveThenLoadRoundTripsRecords(t *testing.T) {
	withHome(t)
	dir, err := Dir("/tmp/myproject")
	require.NoError(t, err)

	f := New()
	f.Records = append(f.Records, Record{Editor: &EditorRecord{Path: "main.go"}})
	f.Records = append(f.Records, Record{Terminal: &TerminalRecord{WorkingDir: "/tmp/myproject"}})
	require.NoError(t, f.Save(dir))

	loaded, loadedDir, err := Load("/tmp/myproject")
	require.NoError(t, err)
	assert.Equal(t, dir, loadedDir)
	assert.Equal(t, f.ID, loaded.ID)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, "main.go", loaded.Records[0].Editor.Path)
	assert.Equal(t, "/tmp/myproject", loaded.Records[1].Terminal.WorkingDir)
}

func TestRecordSkipsPanelsThatDeclineToPersist(t *testing.T) {
	f := New()
	f.Record(declinePanel{}, "/tmp/sess")
	assert.Empty(t, f.Records)
}

// declinePanel implements just enough of panel.Panel for Record's purposes;
// the embedded zero-value interface panics if any other method is called,
// which ToSession's early-return avoids.
type declinePanel struct{ panel.Panel }

func (declinePanel) ToSession(string) (panel.SessionRecord, bool) {
	return panel.SessionRecord{}, false
}

func TestUnsavedBufferPathNestsUnderSessionDir(t *testing.T) {
	got := UnsavedBufferPath("/tmp/sess", "main.go")
	assert.Equal(t, filepath.Join("/tmp/sess", "unsaved", "main.go"), got)
}

func TestSaveIsAtomicNoLeftoverTempFile(t *testing.T) {
	withHome(t)
	dir, err := Dir("/tmp/atomic-project")
	require.NoError(t, err)
	require.NoError(t, New().Save(dir))
	_, err = os.Stat(filepath.Join(dir, "session.yaml.tmp"))
	assert.True(t, os.IsNotExist(err))
}
