package screening

import "sort"

// rankResults orders results by combined score descending. The sort is stable
// so candidates with equal scores keep their ingestion order.
func rankResults(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Combined > results[j].Scores.Combined
	})
}
