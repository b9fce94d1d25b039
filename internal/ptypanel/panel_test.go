package ptypanel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpawnsShellAndReceivesOutput(t *testing.T) {
	p, err := New(Config{
		Rows:    10,
		Cols:    40,
		Command: []string{"/bin/sh", "-c", "echo hi; sleep 5"},
	})
	require.NoError(t, err)
	defer p.Close()

	require.Eventually(t, func() bool {
		lines := p.Render(true)
		return lines[0].Cells[0].Ch == 'h'
	}, 2*time.Second, 10*time.Millisecond)
}

func TestResizeUpdatesGeometry(t *testing.T) {
	p, err := New(Config{Rows: 10, Cols: 40, Command: []string{"/bin/sh", "-c", "sleep 5"}})
	require.NoError(t, err)
	defer p.Close()

	p.Resize(20, 60)
	assert.Equal(t, 20, p.rows)
	assert.Equal(t, 60, p.cols)
}

func TestCloseTerminatesProcess(t *testing.T) {
	p, err := New(Config{Rows: 10, Cols: 40, Command: []string{"/bin/sh", "-c", "sleep 5"}})
	require.NoError(t, err)

	p.Close()
	assert.False(t, p.IsRunning())
}

func TestCommandPanelRespawnsShellAfterExit(t *testing.T) {
	p, err := New(Config{Rows: 10, Cols: 40, Command: []string{"/bin/sh", "-c", "true"}})
	require.NoError(t, err)
	defer p.Close()

	// autoRespawn is set whenever an explicit Command was given (an AI-tool
	// style session): when it exits, the panel spawns an interactive shell
	// instead of auto-closing. Respawn clears autoRespawn, so running with
	// autoRespawn cleared means the replacement shell is up.
	require.Eventually(t, func() bool {
		p.mu.RLock()
		running := p.running
		respawned := !p.autoRespawn
		p.mu.RUnlock()
		return running && respawned
	}, 2*time.Second, 10*time.Millisecond)
}
