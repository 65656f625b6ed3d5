package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line     string
		want     CommitRecord
		wantOK   bool
	}{
		"well formed line": {
			line:   "abc123||Fix retry bug (#42)||Jane Doe",
			want:   CommitRecord{ShortHash: "abc123", Subject: "Fix retry bug (#42)", Author: "Jane Doe"},
			wantOK: true,
		},
		"subject containing separator": {
			line:   "abc123||weird || subject||Jane Doe",
			want:   CommitRecord{ShortHash: "abc123", Subject: "weird || subject", Author: "Jane Doe"},
			wantOK: true,
		},
		"too few fields": {
			line:   "abc123||no author",
			wantOK: false,
		},
		"empty line": {
			line:   "",
			wantOK: false,
		},
		"empty fields still parse": {
			line:   "||||",
			want:   CommitRecord{},
			wantOK: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec, ok := ParseRecord(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, rec)
			}
		})
	}
}

func TestDocument_IsEmpty(t *testing.T) {
	t.Parallel()

	doc := Document{Tag: "v1.0.0"}
	assert.True(t, doc.IsEmpty())

	doc.Entries = append(doc.Entries, Entry{Title: "Fix retry bug", Author: "Jane Doe"})
	assert.False(t, doc.IsEmpty())
}
