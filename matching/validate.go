// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import "fmt"

// Validate checks that assignment is a bijection over participants in which
// nobody draws themselves or an excluded receiver.
func Validate[ID comparable](participants []ID, exclusions []Exclusion[ID], assignment map[ID]ID) error {
	if len(assignment) != len(participants) {
		return fmt.Errorf("%w: %d givers for %d participants", ErrInvalidAssignment, len(assignment), len(participants))
	}

	members := make(map[ID]struct{}, len(participants))
	for _, p := range participants {
		members[p] = struct{}{}
	}

	forbidden := make(map[Exclusion[ID]]struct{}, len(exclusions))
	for _, ex := range exclusions {
		forbidden[ex] = struct{}{}
	}

	received := make(map[ID]struct{}, len(assignment))
	for giver, receiver := range assignment {
		if _, ok := members[giver]; !ok {
			return fmt.Errorf("%w: giver %v is not a participant", ErrInvalidAssignment, giver)
		}
		if _, ok := members[receiver]; !ok {
			return fmt.Errorf("%w: receiver %v is not a participant", ErrInvalidAssignment, receiver)
		}
		if giver == receiver {
			return fmt.Errorf("%w: %v draws themselves", ErrInvalidAssignment, giver)
		}
		if _, ok := forbidden[Exclusion[ID]{Giver: giver, Receiver: receiver}]; ok {
			return fmt.Errorf("%w: %v may not draw %v", ErrInvalidAssignment, giver, receiver)
		}
		if _, dup := received[receiver]; dup {
			return fmt.Errorf("%w: %v receives more than once", ErrInvalidAssignment, receiver)
		}
		received[receiver] = struct{}{}
	}
	return nil
}
