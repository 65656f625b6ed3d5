package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {Argument, "Argument Error"},
		"configuration": {Configuration, "Configuration Error"},
		"repository":    {Repository, "Repository Error"},
		"runtime":       {Runtime, "Runtime Error"},
		"unknown":       {ErrorCategory(99), "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestCLIError_Error(t *testing.T) {
	t.Parallel()

	err := NewRuntimeError("git log failed")
	assert.Equal(t, "git log failed", err.Error())
}

func TestMissingTag(t *testing.T) {
	t.Parallel()

	err := MissingTag()
	require.NotNil(t, err)
	assert.Equal(t, Argument, err.Category)
	assert.Contains(t, err.Usage, "--tag")
	assert.NotEmpty(t, err.Remediation)
}

func TestWrap_NilError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "context"))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage(
		"a release tag is required",
		"shiplog --tag <name>",
		"Pass the tag to generate a changelog section for",
	)

	out := FormatErrorPlain(err)
	assert.Contains(t, out, "Error [Argument Error]: a release tag is required")
	assert.Contains(t, out, "Usage: shiplog --tag <name>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• Pass the tag")
}

func TestFormatError_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatError(nil))
	assert.Empty(t, FormatErrorPlain(nil))
}
