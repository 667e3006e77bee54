// Package latency emulates backend processing cost for simulated requests.
package latency

import (
	"context"
	"math/rand"
	"time"
)

// Delay tiers. Reads are short, writes medium, AI and document analysis long.
// UI loading behavior depends on the relative ordering of these tiers rather
// than absolute timing, so the tiering is part of the contract.
const (
	ReadMin = 400 * time.Millisecond
	ReadMax = 1000 * time.Millisecond

	WriteMin = 1000 * time.Millisecond
	WriteMax = 2000 * time.Millisecond

	AIMin = 2500 * time.Millisecond
	AIMax = 4000 * time.Millisecond
)

// Simulator suspends handlers for artificial processing time. Suspension is
// per-goroutine: a delayed handler never blocks other in-flight dispatches.
type Simulator struct {
	// Scale multiplies every delay. Tests run with a small scale to keep the
	// tier ordering observable without real waiting.
	Scale float64
}

// NewSimulator creates a Simulator. A scale of 0 or less means full speed 1.0.
func NewSimulator(scale float64) *Simulator {
	if scale <= 0 {
		scale = 1.0
	}
	return &Simulator{Scale: scale}
}

// Delay suspends the caller for d (scaled). It returns early if ctx is
// cancelled; the handler still runs to completion, matching the model's lack
// of a cancellation primitive.
func (s *Simulator) Delay(ctx context.Context, d time.Duration) {
	d = time.Duration(float64(d) * s.Scale)
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Read suspends for a short read-tier delay.
func (s *Simulator) Read(ctx context.Context) {
	s.Delay(ctx, between(ReadMin, ReadMax))
}

// Write suspends for a medium write-tier delay.
func (s *Simulator) Write(ctx context.Context) {
	s.Delay(ctx, between(WriteMin, WriteMax))
}

// AI suspends for a long AI-processing-tier delay.
func (s *Simulator) AI(ctx context.Context) {
	s.Delay(ctx, between(AIMin, AIMax))
}

func between(min, max time.Duration) time.Duration {
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
