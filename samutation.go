package xcsf

import "math"

// samScheme selects a self-adaptive mutation-rate update rule. Grounded on
// original_source/xcsf/sam.c's SAM_LOG_NORMAL / SAM_UNIFORM / SAM_RATE_SELECT.
type samScheme int

const (
	samLogNormal samScheme = iota
	samUniform
	samRateSelect
)

const samMuEpsilon = 0.0001 // smallest mutation rate allowable.

// samRates mirrors sam.c's static mrates table: candidate mutation rates
// the rate-select scheme jumps between.
var samRates = []float64{0.0001, 0.001, 0.002, 0.005, 0.01, 0.01, 0.02, 0.05, 0.1, 1.0}

// samInit returns N fresh self-adapted mutation rates, one per scheme in
// types, mirroring sam_init.
func samInit(rng RNG, types []samScheme) []float64 {
	mu := make([]float64, len(types))
	for i, t := range types {
		switch t {
		case samLogNormal, samUniform:
			mu[i] = uniform(rng, samMuEpsilon, 1)
		case samRateSelect:
			mu[i] = samRates[rng.Intn(len(samRates))]
		}
	}
	return mu
}

// samAdapt self-adapts mu in place, mirroring sam_adapt.
func samAdapt(rng RNG, mu []float64, types []samScheme) {
	for i, t := range types {
		switch t {
		case samLogNormal:
			mu[i] *= math.Exp(gaussian(rng, 0, 1))
			mu[i] = clamp(mu[i], samMuEpsilon, 1)
		case samRateSelect:
			if rng.Float64() < 0.1 {
				mu[i] = samRates[rng.Intn(len(samRates))]
			}
		case samUniform:
			if rng.Float64() < 0.1 {
				mu[i] = uniform(rng, samMuEpsilon, 1)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
