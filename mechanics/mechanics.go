// Package mechanics implements the closed-form payoff model of the
// block-withholding attack game between two mining pools, following the
// revenue equations in Eyal's "The Miner's Dilemma".
//
// All quantities are normalized: pool sizes are shares of total network
// capacity, and an attack rate is the slice of a pool's own capacity
// diverted into infiltrating the other pool. A revenue density of 1 is the
// no-conflict solo-mining baseline.
package mechanics

import (
	"github.com/golang/glog"

	"github.com/brandtabbott/poolwars/internal/fminbound"
)

const (
	// totalCapacity is the mining power of the whole network. The model
	// is normalized so pool sizes are fractions of it.
	totalCapacity = 1.0

	// rateEpsilon guards the effective-capacity denominator. Below it,
	// both pools have diverted essentially the entire network into
	// attacks and the rates are defined to be zero.
	rateEpsilon = 1e-9

	// responseTolerance is the absolute tolerance on the best-response
	// attack rate.
	responseTolerance = 1e-5
)

// EffectiveRates returns each pool's effective mining rate: the capacity
// it still mines with, as a share of the capacity the whole network still
// mines with. Infiltrating power mines for nobody.
//
// Returns (0, 0) when attacks have consumed effectively all capacity.
func EffectiveRates(m1, m2, x12, x21 float64) (float64, float64) {
	effective := totalCapacity - x12 - x21
	if effective <= rateEpsilon {
		return 0, 0
	}

	return (m1 - x12) / effective, (m2 - x21) / effective
}

// RevenueDensities returns each pool's revenue per unit of its capacity.
// A density of 1 is the solo-mining baseline; above 1 the pool profits
// from the attack configuration, below 1 it loses.
//
// Returns (0, 0) when the shared denominator collapses to zero or below.
func RevenueDensities(m1, m2, x12, x21 float64) (float64, float64) {
	r1, r2 := EffectiveRates(m1, m2, x12, x21)

	denom := m1*m2 + m1*x12 + m2*x21
	if denom <= 0 {
		return 0, 0
	}

	num1 := m2*r1 + x12*(r1+r2)
	num2 := m1*r2 + x21*(r1+r2)
	return num1 / denom, num2 / denom
}

// AbsolutePayoff returns each pool's per-round payoff, its revenue density
// scaled by its size. This is the quantity matches are scored on.
func AbsolutePayoff(m1, m2, x12, x21 float64) (float64, float64) {
	r1, r2 := RevenueDensities(m1, m2, x12, x21)
	return r1 * m1, r2 * m2
}

// BestResponse finds the attack rate in [0, mySize] that maximizes the
// caller's absolute payoff, holding the opponent's rate fixed.
//
// ok is false when the bounded search exhausted its iteration budget; the
// returned rate is then the always-feasible 0, a conservative fallback
// rather than an optimum.
func BestResponse(mySize, oppSize, oppAction float64) (x float64, ok bool) {
	objective := func(candidate float64) float64 {
		// Cast the caller as pool 1 and negate: the minimizer of -p1 is
		// the payoff-maximizing rate.
		p1, _ := AbsolutePayoff(mySize, oppSize, candidate, oppAction)
		return -p1
	}

	x, ok = fminbound.Minimize(objective, 0, mySize, responseTolerance, fminbound.DefaultMaxIter)
	if !ok {
		glog.Warningf("best response search did not converge for m=%v vs opponent m=%v, x=%v; falling back to 0",
			mySize, oppSize, oppAction)
		return 0, false
	}

	return x, true
}
