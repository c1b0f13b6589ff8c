// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

const (
	// MinParticipants is the smallest group Solve will draw for.
	MinParticipants = 4
	// DefaultMaxAttempts bounds the randomized restarts.
	DefaultMaxAttempts = 2000
)

// Option configures a single Solve call.
type Option func(*options)

type options struct {
	maxAttempts int
	stepLimit   int
	stepBudget  int
	rng         *rand.Rand
}

// WithMaxAttempts sets the attempt budget. It must be positive.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

// WithStepLimit caps the receivers tried within one attempt. An attempt
// that reaches the cap is abandoned and the next one starts with fresh
// shuffles. Zero, the default, lets every attempt search to completion.
func WithStepLimit(n int) Option {
	return func(o *options) {
		o.stepLimit = n
	}
}

// WithStepBudget caps the receivers tried across all attempts of one call.
// Once it is spent the call fails with ErrSearchExhausted, however many
// attempts remain. Zero, the default, leaves only the attempt budget.
func WithStepBudget(n int) Option {
	return func(o *options) {
		o.stepBudget = n
	}
}

// WithRand sets the randomness source used to shuffle candidates.
// A *rand.Rand is not safe for concurrent use; give each call its own.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxAttempts <= 0 {
		return options{}, contractErr("max attempts must be positive, got %d", o.maxAttempts)
	}
	if o.stepLimit < 0 {
		return options{}, contractErr("step limit must not be negative, got %d", o.stepLimit)
	}
	if o.stepBudget < 0 {
		return options{}, contractErr("step budget must not be negative, got %d", o.stepBudget)
	}
	if o.rng == nil {
		o.rng = newRand()
	}
	return o, nil
}

// newRand seeds a PCG generator from crypto/rand.
func newRand() *rand.Rand {
	var b [16]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = crand.Read(b[:])
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}
