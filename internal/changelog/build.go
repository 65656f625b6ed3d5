package changelog

// History is the view of version-control state a Builder needs. All methods
// degrade to empty results on failure; see internal/git for the production
// implementation.
type History interface {
	// Tags returns all tags sorted by creation date, newest first.
	Tags() []string
	// RefExists reports whether ref resolves to a commit.
	RefExists(ref string) bool
	// Log returns raw "hash||subject||author" lines for before..after, or
	// for the last limit commits reachable from after when before is empty.
	Log(before, after string, limit int) []string
}

// Builder derives changelog documents from a History.
type Builder struct {
	history History
	branch  string
	limit   int
	warnf   func(format string, args ...any)
	debugf  func(format string, args ...any)
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBranch sets the fallback branch used when the requested tag is missing.
func WithBranch(branch string) BuilderOption {
	return func(b *Builder) {
		b.branch = branch
	}
}

// WithLimit sets the commit cap for ranges without a predecessor tag.
func WithLimit(limit int) BuilderOption {
	return func(b *Builder) {
		b.limit = limit
	}
}

// WithWarnFunc routes resolver warnings (e.g. a missing tag) to the caller.
func WithWarnFunc(warnf func(format string, args ...any)) BuilderOption {
	return func(b *Builder) {
		b.warnf = warnf
	}
}

// WithDebugFunc routes range resolution traces to the caller.
func WithDebugFunc(debugf func(format string, args ...any)) BuilderOption {
	return func(b *Builder) {
		b.debugf = debugf
	}
}

// NewBuilder creates a Builder over the given history.
func NewBuilder(history History, opts ...BuilderOption) *Builder {
	b := &Builder{
		history: history,
		branch:  "main",
		limit:   50,
		warnf:   func(string, ...any) {},
		debugf:  func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Generate builds the changelog document for tag. The whole flow is one
// linear pass; an unusable range or empty history produces an empty
// document, never an error.
func (b *Builder) Generate(tag string) Document {
	rng := b.resolveRange(tag)
	b.debugf("resolved %s range for %q: before=%q after=%q limit=%d",
		rng.Kind, tag, rng.Before, rng.After, rng.Limit)

	doc := Document{Tag: tag}
	for _, line := range b.history.Log(rng.Before, rng.After, rng.Limit) {
		rec, ok := ParseRecord(line)
		if !ok {
			continue
		}

		title, prNumber := CleanSubject(rec.Subject)
		if title == "" {
			continue
		}

		doc.Entries = append(doc.Entries, Entry{
			Title:    title,
			PRNumber: prNumber,
			Author:   rec.Author,
		})
	}
	return doc
}
