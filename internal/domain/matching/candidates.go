package matching

import "sort"

// candidatePair is an unordered pair of normalized records from different
// accounts that fall inside the matching window. Indices refer to the
// normalized record slice; the smaller-id record always comes first.
type candidatePair struct {
	a, b    int
	dateDiff int
}

// generateCandidates produces every unordered pair of records from different
// accounts whose calendar days are at most maxDays apart. Records are grouped
// into per-day buckets first, so each record is only compared against the
// buckets inside its window rather than the whole set. Each pair is generated
// exactly once: a record pairs within its own bucket (higher index only) and
// with strictly later buckets.
func generateCandidates(records []record, maxDays int) []candidatePair {
	buckets := make(map[int][]int)
	for i, r := range records {
		buckets[r.Day] = append(buckets[r.Day], i)
	}

	days := make([]int, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Ints(days)

	var pairs []candidatePair
	for _, day := range days {
		bucket := buckets[day]

		// Same-day pairs.
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if p, ok := makePair(records, bucket[i], bucket[j], 0); ok {
					pairs = append(pairs, p)
				}
			}
		}

		// Pairs with later buckets inside the window.
		for offset := 1; offset <= maxDays; offset++ {
			other, ok := buckets[day+offset]
			if !ok {
				continue
			}
			for _, i := range bucket {
				for _, j := range other {
					if p, ok := makePair(records, i, j, offset); ok {
						pairs = append(pairs, p)
					}
				}
			}
		}
	}
	return pairs
}

// makePair builds a candidate pair, rejecting same-account combinations and
// normalizing order so the lexicographically smaller id comes first.
func makePair(records []record, i, j, dateDiff int) (candidatePair, bool) {
	if records[i].AccountID == records[j].AccountID {
		return candidatePair{}, false
	}
	if compareIDs(records[i].ID, records[j].ID) > 0 {
		i, j = j, i
	}
	return candidatePair{a: i, b: j, dateDiff: dateDiff}, true
}
