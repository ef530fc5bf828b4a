package analytics

import "math/rand"

// RandomSource yields values in [0,1). Injected so tests can pin the
// sequence and assert exact bounds; production uses math/rand.
type RandomSource interface {
	Next() float64
}

type systemRandom struct {
	rng *rand.Rand
}

// NewSystemRandom returns a RandomSource seeded from the given value.
func NewSystemRandom(seed int64) RandomSource {
	return &systemRandom{rng: rand.New(rand.NewSource(seed))}
}

func (s *systemRandom) Next() float64 { return s.rng.Float64() }

// FixedRandom replays a fixed sequence, wrapping around at the end.
// Zero-value sequences yield 0.5 forever.
type FixedRandom struct {
	Values []float64
	idx    int
}

func (f *FixedRandom) Next() float64 {
	if len(f.Values) == 0 {
		return 0.5
	}
	v := f.Values[f.idx%len(f.Values)]
	f.idx++
	return v
}
