// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matching draws Secret Santa assignments.

Given a participant set and a set of forbidden (giver, receiver) pairs, Solve
returns a permutation in which every participant gives exactly once, receives
exactly once, never draws themselves and never draws an excluded receiver.

# Identifiers

The solver is generic over any comparable identifier, so the same code serves
persisted participant IDs and provisional form indices:

	sol, err := matching.Solve(ids, exclusions)
	sol, err := matching.DryRun(len(form.Participants), excludedByIndex)

# Algorithm

  - Candidate sets are precomputed for every giver (everyone minus self minus
    explicit exclusions). An empty candidate set fails immediately.
  - Givers are ordered by ascending candidate count (most constrained first).
  - Each attempt is a depth-first backtracking search that tries the remaining
    unused candidates in a freshly shuffled order.
  - Attempts repeat up to the budget (default 2000) and each result is
    re-validated before it is returned.

Without a step limit an attempt explores every branch, so a failed attempt
already shows the input is infeasible. WithStepLimit abandons an attempt
after a fixed number of tentative assignments, which turns the restarts into
a bounded randomized search for large, densely excluded groups. WithStepBudget
caps the tentative assignments of the whole call, so the worst case no longer
grows with the attempt budget. With either set, ErrSearchExhausted no longer
proves that no assignment exists.

# Failure

Every "no assignment" outcome is a *NoSolutionError matching ErrNoSolution
together with one reason:

	ErrTooFewParticipants  fewer than MinParticipants
	ErrInfeasibleGiver     some giver has no legal receiver
	ErrSearchExhausted     the attempt budget ran out

Malformed input (duplicate IDs, exclusions naming unknown IDs, a non-positive
budget, a negative step limit or step budget) returns an error matching ErrContract instead.

# Randomness

Pass a source with WithRand for reproducible draws. Without one, each call
seeds its own generator from crypto/rand. The solver keeps no package state
and is safe for concurrent use as long as callers do not share a *rand.Rand.
*/
package matching
