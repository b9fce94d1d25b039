package ptypanel

import "testing"

import "github.com/stretchr/testify/assert"

func TestShellArgsFish(t *testing.T) {
	assert.Equal(t, []string{"-l"}, shellArgs("/usr/bin/fish"))
}

func TestShellArgsZsh(t *testing.T) {
	assert.Equal(t, []string{"-l", "-i"}, shellArgs("/usr/bin/zsh"))
}

func TestShellArgsBashHasNone(t *testing.T) {
	assert.Nil(t, shellArgs("/bin/bash"))
}

func TestDiscoverShellSkipsMissingShellEnv(t *testing.T) {
	t.Setenv("SHELL", "/nonexistent/shell")
	shell := discoverShell()
	assert.NotEmpty(t, shell)
	assert.NotEqual(t, "/nonexistent/shell", shell)
}
