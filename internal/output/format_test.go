package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Warnf_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	p.Warnf("tag %q does not exist", "v9.9.9")

	assert.Equal(t, "Warning: tag \"v9.9.9\" does not exist\n", buf.String())
}

func TestPrinter_Debugf_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	p.Debugf("Running: %s", "git tag --sort=-creatordate")

	assert.Equal(t, "[DEBUG] Running: git tag --sort=-creatordate\n", buf.String())
}

func TestPrinter_NilWriterDefaultsToStderr(t *testing.T) {
	t.Parallel()

	p := NewPrinter(nil, true)
	assert.NotNil(t, p.w)
}

func TestIsTTY_PipedBuffer(t *testing.T) {
	t.Parallel()

	// Test processes run with piped standard streams in CI; a pipe is
	// never a terminal.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	assert.False(t, IsTTY(w.Fd()))
}
