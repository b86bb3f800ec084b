package synth

import (
	"math"

	"github.com/shopspring/decimal"
)

// Seed sums the code points of the ticker.
func Seed(ticker string) int {
	seed := 0
	for _, r := range ticker {
		seed += int(r)
	}
	return seed
}

// sineHash maps an integer to a pseudo-random value in [0, 1).
func sineHash(n int) float64 {
	x := math.Sin(float64(n)) * 10000
	return x - math.Floor(x)
}

// walk is the seeded counter behind a history. next returns the draw for the
// current counter together with the advanced state.
type walk struct {
	counter int
}

func newWalk(seed int) walk { return walk{counter: seed} }

func (w walk) next() (float64, walk) {
	return sineHash(w.counter), walk{counter: w.counter + 1}
}

// seededSource adapts a walk to Source for a single generation call.
type seededSource struct {
	w walk
}

func (s *seededSource) Float64() float64 {
	var r float64
	r, s.w = s.w.next()
	return r
}

// Round2 rounds half away from zero to two decimals, working on the shortest
// decimal form of v (1.005 rounds to 1.01). NaN and infinities are returned
// unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
