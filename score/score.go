// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package score implements the lexicographic score comparator used to
// rank candidate election solutions.
package score

import (
	"github.com/luxfi/election/types"
	elmath "github.com/luxfi/election/utils/math"
)

// Compare orders two scores under (maximize, maximize, minimize) on
// (min_backing, total_backing, sum_of_squares). It returns -1, 0, 1.
func Compare(a, b types.Score) int {
	return a.Compare(b)
}

// IsBetter reports whether new improves on old by at least the
// given relative threshold on the primary score element, using saturating
// fixed-point arithmetic — never floating point, per the no-float
// requirement on score comparisons.
//
//	is_better(new, old, threshold) == new[0] >= old[0] * (1 + threshold)
func IsBetter(newScore, oldScore types.Score, threshold elmath.Perbill) bool {
	required := threshold.AddSaturatingMul(oldScore[0])
	return newScore[0] >= required
}

// IsBetterOrEqualTotal compares the full triple without applying a
// threshold: it reports whether a orders at or above b under Compare.
func IsBetterOrEqualTotal(a, b types.Score) bool {
	return a.Compare(b) >= 0
}
