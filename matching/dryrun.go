// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"maps"
	"slices"
)

// DryRun checks feasibility for n provisional participants indexed 0..n-1.
// excluded maps a giver index to the receiver indices it may not draw;
// listing a giver's own index is allowed and has no extra effect.
func DryRun(n int, excluded map[int][]int, opts ...Option) (Solution[int], error) {
	if n < 0 {
		return Solution[int]{}, contractErr("negative participant count %d", n)
	}

	participants := make([]int, n)
	for i := range participants {
		participants[i] = i
	}

	var exclusions []Exclusion[int]
	for _, giver := range slices.Sorted(maps.Keys(excluded)) {
		for _, receiver := range excluded[giver] {
			exclusions = append(exclusions, Exclusion[int]{Giver: giver, Receiver: receiver})
		}
	}

	return Solve(participants, exclusions, opts...)
}
