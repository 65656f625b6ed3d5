package changelog

// RangeKind identifies how a commit range was resolved.
type RangeKind int

const (
	// RangeExplicit bounds the range by a predecessor tag: before..after.
	RangeExplicit RangeKind = iota
	// RangeCapped takes the last Limit commits reachable from the tag
	// (first release, no predecessor).
	RangeCapped
	// RangeBranchDiff diffs the latest tag against the fallback branch
	// (requested tag does not exist).
	RangeBranchDiff
	// RangeCappedBranch takes the last Limit commits on the fallback branch
	// (requested tag does not exist and the repository has no tags at all).
	RangeCappedBranch
)

// String returns a short name for the range kind, used in debug output.
func (k RangeKind) String() string {
	switch k {
	case RangeExplicit:
		return "explicit"
	case RangeCapped:
		return "capped"
	case RangeBranchDiff:
		return "branch-diff"
	case RangeCappedBranch:
		return "capped-branch"
	default:
		return "unknown"
	}
}

// Range describes the log query for a changelog section. Before is the
// exclusive lower bound; it is empty for capped kinds, where Limit bounds
// the walk from After instead. Capped kinds never issue an open-ended query.
type Range struct {
	Kind   RangeKind
	Before string
	After  string
	Limit  int
}

// resolveRange picks the commit range for tag, consulting the newest-first
// tag list once. Tag existence is decided by list membership alone; the
// direct ref probe is used only to validate the fallback branch, degrading
// to HEAD when the branch is missing.
func (b *Builder) resolveRange(tag string) Range {
	tags := b.history.Tags()

	for i, candidate := range tags {
		if candidate != tag {
			continue
		}
		if i+1 < len(tags) {
			return Range{Kind: RangeExplicit, Before: tags[i+1], After: tag}
		}
		// First release: no predecessor to bound the range.
		return Range{Kind: RangeCapped, After: tag, Limit: b.limit}
	}

	branch := b.branch
	if !b.history.RefExists(branch) {
		branch = "HEAD"
	}

	if len(tags) > 0 {
		b.warnf("tag %q does not exist; diffing latest tag %s against %s", tag, tags[0], branch)
		return Range{Kind: RangeBranchDiff, Before: tags[0], After: branch}
	}

	b.warnf("tag %q does not exist and the repository has no tags; using last %d commits on %s", tag, b.limit, branch)
	return Range{Kind: RangeCappedBranch, After: branch, Limit: b.limit}
}
