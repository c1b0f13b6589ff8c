// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Exclusion forbids Giver from drawing Receiver.
type Exclusion[ID comparable] struct {
	Giver    ID
	Receiver ID
}

// Solution is a complete giver -> receiver assignment.
type Solution[ID comparable] struct {
	Assignment map[ID]ID
	// Attempts is the number of search attempts used, 1-indexed.
	Attempts int
}

// Solve draws an assignment for participants that respects exclusions.
//
// Self-pairs are always forbidden and need not be listed. On failure the
// error is a *NoSolutionError, or an ErrContract error for malformed input.
func Solve[ID comparable](participants []ID, exclusions []Exclusion[ID], opts ...Option) (Solution[ID], error) {
	o, err := newOptions(opts)
	if err != nil {
		return Solution[ID]{}, err
	}

	index, err := indexParticipants(participants)
	if err != nil {
		return Solution[ID]{}, err
	}
	forbidden, err := forbiddenPairs(index, exclusions)
	if err != nil {
		return Solution[ID]{}, err
	}

	n := len(participants)
	if n < MinParticipants {
		return Solution[ID]{}, &NoSolutionError{Reason: ErrTooFewParticipants}
	}

	candidates := make([][]int, n)
	for g := range n {
		for r := range n {
			if g != r && !forbidden[g][r] {
				candidates[g] = append(candidates[g], r)
			}
		}
		if len(candidates[g]) == 0 {
			return Solution[ID]{}, &NoSolutionError{Reason: ErrInfeasibleGiver, Giver: participants[g]}
		}
	}

	order := giverOrder(candidates)
	s := newSearch(candidates, order, o.rng)
	spent := 0
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		limit := o.stepLimit
		if o.stepBudget > 0 {
			if left := o.stepBudget - spent; limit == 0 || left < limit {
				limit = left
			}
		}

		s.reset(limit)
		found := s.assign(0)
		spent += s.steps
		if found {
			assignment := make(map[ID]ID, n)
			for g, r := range s.receiverOf {
				assignment[participants[g]] = participants[r]
			}
			if err := Validate(participants, exclusions, assignment); err == nil {
				return Solution[ID]{Assignment: assignment, Attempts: attempt}, nil
			}
		}
		if o.stepBudget > 0 && spent >= o.stepBudget {
			return Solution[ID]{}, &NoSolutionError{Reason: ErrSearchExhausted, Attempts: attempt}
		}
	}

	return Solution[ID]{}, &NoSolutionError{Reason: ErrSearchExhausted, Attempts: o.maxAttempts}
}

func indexParticipants[ID comparable](participants []ID) (map[ID]int, error) {
	index := make(map[ID]int, len(participants))
	for i, p := range participants {
		if _, dup := index[p]; dup {
			return nil, contractErr("duplicate participant %v", p)
		}
		index[p] = i
	}
	return index, nil
}

func forbiddenPairs[ID comparable](index map[ID]int, exclusions []Exclusion[ID]) ([][]bool, error) {
	n := len(index)
	forbidden := make([][]bool, n)
	for i := range forbidden {
		forbidden[i] = make([]bool, n)
		forbidden[i][i] = true
	}
	for _, ex := range exclusions {
		g, ok := index[ex.Giver]
		if !ok {
			return nil, contractErr("exclusion giver %v is not a participant", ex.Giver)
		}
		r, ok := index[ex.Receiver]
		if !ok {
			return nil, contractErr("exclusion receiver %v is not a participant", ex.Receiver)
		}
		forbidden[g][r] = true
	}
	return forbidden, nil
}

// giverOrder sorts givers by ascending candidate count, keeping input order on ties.
func giverOrder(candidates [][]int) []int {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(candidates[a]), len(candidates[b]))
	})
	return order
}

// search holds the state of one backtracking attempt. It is reset and
// reused across attempts.
type search struct {
	candidates [][]int
	order      []int
	rng        *rand.Rand
	stepLimit  int // 0 means unlimited

	steps      int
	receiverOf []int
	used       []bool
	// scratch[d] holds the shuffled choices of the giver at depth d
	scratch [][]int
}

func newSearch(candidates [][]int, order []int, rng *rand.Rand) *search {
	scratch := make([][]int, len(order))
	for d, giver := range order {
		scratch[d] = make([]int, 0, len(candidates[giver]))
	}
	return &search{
		candidates: candidates,
		order:      order,
		rng:        rng,
		receiverOf: make([]int, len(candidates)),
		used:       make([]bool, len(candidates)),
		scratch:    scratch,
	}
}

// reset clears the previous attempt and sets its step limit.
func (s *search) reset(stepLimit int) {
	s.stepLimit = stepLimit
	s.steps = 0
	for i := range s.receiverOf {
		s.receiverOf[i] = -1
		s.used[i] = false
	}
}

// assign gives a receiver to order[depth] and every giver after it.
func (s *search) assign(depth int) bool {
	if depth == len(s.order) {
		return true
	}
	giver := s.order[depth]

	choices := s.scratch[depth][:0]
	for _, r := range s.candidates[giver] {
		if !s.used[r] {
			choices = append(choices, r)
		}
	}
	s.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	for _, r := range choices {
		if s.stepLimit > 0 && s.steps >= s.stepLimit {
			return false
		}
		s.steps++

		s.receiverOf[giver] = r
		s.used[r] = true

		if s.assign(depth + 1) {
			return true
		}

		// undo
		s.used[r] = false
		s.receiverOf[giver] = -1
	}
	return false
}
