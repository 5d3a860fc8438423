package main

import "slices"

// rankBranches orders records by tip commit time, most recent first, and
// keeps at most limit of them when limited is true. Records with equal
// times keep their input order.
func rankBranches(records []BranchRecord, limit int, limited bool) []BranchRecord {
	ranked := slices.Clone(records)
	slices.SortStableFunc(ranked, func(a, b BranchRecord) int {
		return b.TipCommitTime.Compare(a.TipCommitTime)
	})
	if limited && limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
