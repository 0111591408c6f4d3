package analytics

import "math/rand/v2"

// Random picks an index in [0, n). Implementations must be safe for
// concurrent use when shared between requests.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// DefaultRandom draws from the process-wide math/rand/v2 source.
func DefaultRandom() Random { return globalRandom{} }
