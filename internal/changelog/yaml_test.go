package changelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	doc := Document{
		Tag: "v1.1.0",
		Entries: []Entry{
			{Title: "Fix retry bug", PRNumber: "42", Author: "Jane Doe"},
			{Title: "Update docs", Author: "Sam"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderYAML(&doc, testRepoURL, &buf))

	var got yamlDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "v1.1.0", got.Tag)
	require.Len(t, got.Entries, 2)

	assert.Equal(t, "Fix retry bug", got.Entries[0].Title)
	assert.Equal(t, "42", got.Entries[0].PR)
	assert.Equal(t, "https://github.com/microsoft/durabletask-dotnet/pull/42", got.Entries[0].Link)

	assert.Equal(t, "Update docs", got.Entries[1].Title)
	assert.Empty(t, got.Entries[1].PR)
	assert.Empty(t, got.Entries[1].Link)
}

func TestRenderYAML_EmptyDocument(t *testing.T) {
	t.Parallel()

	doc := Document{Tag: "v1.0.0"}

	var buf bytes.Buffer
	require.NoError(t, RenderYAML(&doc, testRepoURL, &buf))

	var got yamlDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "v1.0.0", got.Tag)
	assert.Empty(t, got.Entries)
}
