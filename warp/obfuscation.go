package warp

import (
	"fmt"
	"math/rand/v2"
)

// Randomized parameter bounds, all inclusive.
const (
	JcMin      = 1
	JcMax      = 128
	JminLow    = 1
	JminHigh   = 400
	JmaxHigh   = 1280
	HeaderLow  = 1
	HeaderHigh = 4
)

// ObfuscationParams are the AmneziaWG values inserted after the private key.
type ObfuscationParams struct {
	S1, S2         int
	Jc, Jmin, Jmax int
	H1, H2, H3, H4 uint32
}

// Lines renders the block in its fixed key order.
func (p ObfuscationParams) Lines() []string {
	return []string{
		fmt.Sprintf("S1 = %d", p.S1),
		fmt.Sprintf("S2 = %d", p.S2),
		fmt.Sprintf("Jc = %d", p.Jc),
		fmt.Sprintf("Jmin = %d", p.Jmin),
		fmt.Sprintf("Jmax = %d", p.Jmax),
		fmt.Sprintf("H1 = %d", p.H1),
		fmt.Sprintf("H2 = %d", p.H2),
		fmt.Sprintf("H3 = %d", p.H3),
		fmt.Sprintf("H4 = %d", p.H4),
	}
}

// IntSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type IntSource interface {
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource is the randomness used when callers pass nil.
var DefaultSource IntSource = globalSource{}

// FixedObfuscation returns the constant parameter set.
func FixedObfuscation() ObfuscationParams {
	return ObfuscationParams{
		Jc: 120, Jmin: 23, Jmax: 911,
		H1: 1, H2: 2, H3: 3, H4: 4,
	}
}

// RandomObfuscation draws a parameter set with Jmin < Jmax.
// Header values may repeat.
func RandomObfuscation(src IntSource) ObfuscationParams {
	if src == nil {
		src = DefaultSource
	}
	jmin := between(src, JminLow, JminHigh)
	return ObfuscationParams{
		Jc:   between(src, JcMin, JcMax),
		Jmin: jmin,
		Jmax: between(src, jmin+1, JmaxHigh),
		H1:   uint32(between(src, HeaderLow, HeaderHigh)),
		H2:   uint32(between(src, HeaderLow, HeaderHigh)),
		H3:   uint32(between(src, HeaderLow, HeaderHigh)),
		H4:   uint32(between(src, HeaderLow, HeaderHigh)),
	}
}

// NewObfuscation returns the parameters for a run, or false when
// obfuscation is disabled.
func NewObfuscation(enabled, randomize bool, src IntSource) (ObfuscationParams, bool) {
	if !enabled {
		return ObfuscationParams{}, false
	}
	if randomize {
		return RandomObfuscation(src), true
	}
	return FixedObfuscation(), true
}

// between returns a uniform integer in [lo, hi].
func between(src IntSource, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}
