// Package changelog derives a release changelog section from commit history.
//
// The flow is a single linear pass: resolve a commit range ending at the
// requested tag, fetch the raw commit lines for that range, clean each
// subject into a display title with an optional pull request number, and
// render the result as Markdown or YAML. Nothing is retried, cached or
// persisted; an empty range is the degenerate case, not an error.
package changelog
