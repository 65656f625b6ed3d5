package changelog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlEntry is the machine-readable form of an Entry, with the resolved
// pull request link included so consumers need no URL template of their own.
type yamlEntry struct {
	Title  string `yaml:"title"`
	PR     string `yaml:"pr,omitempty"`
	Link   string `yaml:"link,omitempty"`
	Author string `yaml:"author"`
}

// yamlDocument mirrors Document for YAML output.
type yamlDocument struct {
	Tag     string      `yaml:"tag"`
	Entries []yamlEntry `yaml:"entries"`
}

// RenderYAML writes the document as YAML for machine consumption.
// Entry order matches the Markdown rendering.
func RenderYAML(doc *Document, repoURL string, w io.Writer) error {
	out := yamlDocument{Tag: doc.Tag, Entries: []yamlEntry{}}

	for _, entry := range doc.Entries {
		ye := yamlEntry{
			Title:  entry.Title,
			PR:     entry.PRNumber,
			Author: entry.Author,
		}
		if entry.PRNumber != "" {
			ye.Link = fmt.Sprintf("%s/pull/%s", repoURL, entry.PRNumber)
		}
		out.Entries = append(out.Entries, ye)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}
