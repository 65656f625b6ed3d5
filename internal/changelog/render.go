package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Title is the heading line that opens every generated changelog document.
const Title = "# Changelog"

// emptyRangeNote is rendered beneath the tag heading when no commits were
// found in the resolved range.
const emptyRangeNote = "*(No commits found in range)*"

// RenderMarkdown writes the Markdown section for a document: a "## <tag>"
// heading followed by one bullet per entry, in entry order. An empty
// document renders the heading and a "no commits" note instead of bullets.
// The section carries no trailing newline; callers terminate the line.
func RenderMarkdown(doc *Document, repoURL string, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "## %s", doc.Tag); err != nil {
		return fmt.Errorf("rendering heading: %w", err)
	}

	if doc.IsEmpty() {
		_, err := io.WriteString(w, "\n"+emptyRangeNote)
		return err
	}

	for _, entry := range doc.Entries {
		if _, err := fmt.Fprintf(w, "\n- %s by %s (%s)", entry.Title, entry.Author, prLink(entry, repoURL)); err != nil {
			return fmt.Errorf("rendering entry: %w", err)
		}
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(doc *Document, repoURL string) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(doc, repoURL, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// prLink formats the Markdown link for an entry's pull request, or an empty
// string when the entry has no PR number.
func prLink(entry Entry, repoURL string) string {
	if entry.PRNumber == "" {
		return ""
	}
	return fmt.Sprintf("[#%s](%s/pull/%s)", entry.PRNumber, repoURL, entry.PRNumber)
}
