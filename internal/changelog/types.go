package changelog

import "strings"

// recordSeparator delimits the hash, subject and author fields in raw log
// lines. It matches the "%h||%s||%an" pretty format used for every query.
const recordSeparator = "||"

// CommitRecord is one parsed line of log output. Ephemeral: produced while
// building a document and discarded after its entry is derived.
type CommitRecord struct {
	ShortHash string
	Subject   string
	Author    string
}

// Entry is a single rendered changelog line: a cleaned title, the pull
// request number extracted from the subject (empty when none was found),
// and the commit author.
type Entry struct {
	Title    string `yaml:"title"`
	PRNumber string `yaml:"pr,omitempty"`
	Author   string `yaml:"author"`
}

// Document is the changelog section for one tag. Entries preserve the order
// of the underlying commit records, reverse chronological as returned by
// the log query.
type Document struct {
	Tag     string  `yaml:"tag"`
	Entries []Entry `yaml:"entries"`
}

// IsEmpty reports whether the document has no entries.
func (d *Document) IsEmpty() bool {
	return len(d.Entries) == 0
}

// ParseRecord splits a raw "hash||subject||author" line into a CommitRecord.
// Lines with fewer than three fields are rejected. A subject containing the
// separator keeps its inner fields: the first field is the hash, the last is
// the author, everything between is the subject.
func ParseRecord(line string) (CommitRecord, bool) {
	parts := strings.Split(line, recordSeparator)
	if len(parts) < 3 {
		return CommitRecord{}, false
	}
	return CommitRecord{
		ShortHash: parts[0],
		Subject:   strings.Join(parts[1:len(parts)-1], recordSeparator),
		Author:    parts[len(parts)-1],
	}, true
}
