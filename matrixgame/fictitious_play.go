// Package matrixgame solves discretized one-shot attack games by
// fictitious play over the payoff bimatrix.
package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"

	"github.com/brandtabbott/poolwars/mechanics"
)

// BuildPayoffMatrices tabulates both pools' payoffs over discretized rate
// grids. Entry [i][j] holds the payoff when pool 1 commits grid1[i] and
// pool 2 commits grid2[j]. The game is general-sum, so each player gets
// their own matrix.
func BuildPayoffMatrices(m1, m2 float64, grid1, grid2 []float64) ([][]float64, [][]float64) {
	p0 := make([][]float64, len(grid1))
	p1 := make([][]float64, len(grid1))
	for i, x1 := range grid1 {
		p0[i] = make([]float64, len(grid2))
		p1[i] = make([]float64, len(grid2))
		for j, x2 := range grid2 {
			p0[i][j], p1[i][j] = mechanics.AbsolutePayoff(m1, m2, x1, x2)
		}
	}

	return p0, p1
}

// FictitiousPlay approximates a mixed equilibrium of the bimatrix game:
// each iteration both players best-respond to the opponent's empirical
// play so far, with probability mixingLambda of a uniform exploration
// move instead. Returns each player's normalized play frequencies.
func FictitiousPlay(p0Payoffs, p1Payoffs [][]float64, nIter int, mixingLambda float64) ([]float32, []float32) {
	p0PlayCounts := make([]int, len(p0Payoffs))
	p1PlayCounts := make([]int, len(p0Payoffs[0]))
	logEvery := nIter / 10
	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if rand.Float64() < mixingLambda {
			p0Selected = rand.Intn(len(p0PlayCounts))
		} else {
			p0Selected = getP0BestResponse(p0Payoffs, p1PlayCounts)
		}

		var p1Selected int
		if rand.Float64() < mixingLambda {
			p1Selected = rand.Intn(len(p1PlayCounts))
		} else {
			p1Selected = getP1BestResponse(p1Payoffs, p0PlayCounts)
		}
		p0PlayCounts[p0Selected] += 1
		p1PlayCounts[p1Selected] += 1

		if logEvery > 0 && i%logEvery == 0 {
			glog.V(1).Infof("After %d iterations, player 0 weights: %v", i, normalize(p0PlayCounts))
			glog.V(1).Infof("After %d iterations, player 1 weights: %v", i, normalize(p1PlayCounts))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts)
}

func getP0BestResponse(p0Payoffs [][]float64, p1PlayCounts []int) int {
	utilities := make([]float64, len(p0Payoffs))
	for j, c := range p1PlayCounts {
		for i := range utilities {
			utilities[i] += float64(c) * p0Payoffs[i][j]
		}
	}

	_, br := argMax(utilities)
	return br
}

func getP1BestResponse(p1Payoffs [][]float64, p0PlayCounts []int) int {
	utilities := make([]float64, len(p1Payoffs[0]))
	for i, c := range p0PlayCounts {
		for j := range utilities {
			utilities[j] += float64(c) * p1Payoffs[i][j]
		}
	}

	_, br := argMax(utilities)
	return br
}

func normalize(counts []int) []float32 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float32, len(counts))
	for i, v := range counts {
		result[i] = float32(v) / float32(total)
	}
	return result
}

func argMax(vs []float64) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		} else if v == best && rand.Intn(2) == 1 {
			bestIdx = i
		}
	}

	return best, bestIdx
}
