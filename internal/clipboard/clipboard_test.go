package clipboard

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFallsBackToOSC52WithoutBackend(t *testing.T) {
	c := &Clipboard{}
	var buf bytes.Buffer
	c.SetOSCWriter(&buf)

	err := c.Write("hello", ClipboardReg)
	assert.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))
	assert.True(t, strings.Contains(buf.String(), encoded))
	assert.True(t, strings.Contains(buf.String(), "\x1b]52;c;"))
}

func TestReadWithoutBackendReturnsEmpty(t *testing.T) {
	c := &Clipboard{}
	text, err := c.Read(ClipboardReg)
	assert.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestWriteWithoutBackendOrWriterIsNoop(t *testing.T) {
	c := &Clipboard{}
	err := c.Write("anything", ClipboardReg)
	assert.NoError(t, err)
}
