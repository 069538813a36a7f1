package xcsf

import "math/rand"

// RNG is the facade the core consumes for every random decision: covering,
// selection, mutation, dropout. The actual pseudo-random number generator
// library is an external collaborator (spec §1); this interface is the only
// thing the engine depends on, so a caller may substitute a higher-quality
// or cross-platform-deterministic generator without touching the core.
type RNG interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
	// Intn returns a pseudo-random number in [0, n).
	Intn(n int) int
	// NormFloat64 returns a standard-normal pseudo-random number.
	NormFloat64() float64
	// Child returns an independent stream seeded deterministically from
	// this one, for use by a single worker of a parallel kernel (spec §5).
	Child() RNG
}

// goRNG adapts math/rand.Rand to the RNG facade. This is the default
// backing: the spec places the real PRNG library out of scope, so the
// facade's default implementation is stdlib by design.
type goRNG struct {
	r *rand.Rand
}

// NewRNG returns the default RNG facade seeded with seed.
func NewRNG(seed int64) RNG {
	return &goRNG{r: rand.New(rand.NewSource(seed))}
}

func (g *goRNG) Float64() float64      { return g.r.Float64() }
func (g *goRNG) Intn(n int) int        { return g.r.Intn(n) }
func (g *goRNG) NormFloat64() float64  { return g.r.NormFloat64() }

func (g *goRNG) Child() RNG {
	return &goRNG{r: rand.New(rand.NewSource(g.r.Int63()))}
}

// uniform returns a pseudo-random number in [lo, hi).
func uniform(rng RNG, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// gaussian returns a pseudo-random Gaussian sample with the given mean and
// standard deviation. Mirrors the teacher's free function Gaussian
// (naneat.go) built on math/rand's normal sampler.
func gaussian(rng RNG, mean, stdev float64) float64 {
	return mean + rng.NormFloat64()*stdev
}

// roulette picks an index into weights with probability proportional to its
// weight. Mirrors the teacher's free function Roulette (naneat.go), which
// performs the identical cumulative-sum scan over arbitrary positive
// weights; used here for EA parent selection, deletion vote and PA-free
// deletion bookkeeping.
func roulette(rng RNG, weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return rng.Intn(len(weights))
	}
	target := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc >= target {
			return i
		}
	}
	return len(weights) - 1
}
