// Estimate the one-shot attack game's equilibrium three ways: iterated
// best response on the closed-form model, fictitious play on the
// discretized bimatrix, and vanilla CFR on the discretized game tree.
// The point is the dilemma: the equilibrium payoff falls short of peace.
package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/timpalpant/go-cfr"
	"github.com/timpalpant/go-cfr/tree"

	"github.com/brandtabbott/poolwars"
	"github.com/brandtabbott/poolwars/matrixgame"
	"github.com/brandtabbott/poolwars/mechanics"
)

func main() {
	m1 := flag.Float64("m1", 0.2, "Pool 1 size")
	m2 := flag.Float64("m2", 0.2, "Pool 2 size")
	brIter := flag.Int("br_iter", 10, "Best-response dynamics iterations")
	fpIter := flag.Int("fp_iter", 100000, "Fictitious play iterations")
	gridPoints := flag.Int("grid_points", 21, "Rate grid points per side")
	cfrIter := flag.Int("cfr_iter", 1000, "CFR iterations")
	flag.Parse()

	peace1, peace2 := mechanics.AbsolutePayoff(*m1, *m2, 0, 0)
	glog.Infof("Peaceful payoffs: pool 1 = %.6f, pool 2 = %.6f", peace1, peace2)

	x1, x2 := bestResponseDynamics(*m1, *m2, *brIter)
	eq1, eq2 := mechanics.AbsolutePayoff(*m1, *m2, x1, x2)
	glog.Infof("Best-response fixed point: x1=%.6f, x2=%.6f => p1=%.6f, p2=%.6f",
		x1, x2, eq1, eq2)

	fictitiousPlay(*m1, *m2, *gridPoints, *fpIter)
	runCFR(*m1, *m2, *gridPoints, *cfrIter)

	if eq1 < peace1 && eq2 < peace2 {
		glog.Infof("Dilemma holds: equilibrium pays %.6f / %.6f, peace pays %.6f / %.6f",
			eq1, eq2, peace1, peace2)
	} else {
		glog.Warning("No dilemma at these pool sizes: equilibrium does not fall short of peace")
	}
}

// bestResponseDynamics iterates simultaneous mutual best response from
// all-peace, the same trajectory two NashSeekers trace in a match.
func bestResponseDynamics(m1, m2 float64, iters int) (float64, float64) {
	var x1, x2 float64
	for i := 1; i <= iters; i++ {
		// Simultaneous update: both respond to the previous iterate.
		next1, _ := mechanics.BestResponse(m1, m2, x2)
		next2, _ := mechanics.BestResponse(m2, m1, x1)
		x1, x2 = next1, next2

		p1, p2 := mechanics.AbsolutePayoff(m1, m2, x1, x2)
		glog.Infof("Iter %d: x1=%.6f, x2=%.6f => p1=%.6f, p2=%.6f", i, x1, x2, p1, p2)
	}

	return x1, x2
}

func fictitiousPlay(m1, m2 float64, gridPoints, iters int) {
	grid1 := make([]float64, gridPoints)
	grid2 := make([]float64, gridPoints)
	for i := range grid1 {
		grid1[i] = m1 * float64(i) / float64(gridPoints-1)
		grid2[i] = m2 * float64(i) / float64(gridPoints-1)
	}

	p0Payoffs, p1Payoffs := matrixgame.BuildPayoffMatrices(m1, m2, grid1, grid2)
	w0, w1 := matrixgame.FictitiousPlay(p0Payoffs, p1Payoffs, iters, 0.05)
	glog.Infof("Fictitious play mean rates: x1=%.6f, x2=%.6f",
		meanRate(grid1, w0), meanRate(grid2, w1))
}

func meanRate(grid []float64, weights []float32) float64 {
	var mean float64
	for i, w := range weights {
		mean += float64(w) * grid[i]
	}

	return mean
}

func runCFR(m1, m2 float64, gridPoints, iters int) {
	game, err := poolwars.NewAttackGame(m1, m2, gridPoints)
	if err != nil {
		glog.Fatal(err)
	}

	nodes := 0
	tree.Visit(game, func(node cfr.GameTreeNode) {
		nodes++
	})
	glog.Infof("Discretized game tree has %d nodes", nodes)

	policy := cfr.NewPolicyTable(cfr.DiscountParams{})
	vanillaCFR := cfr.New(policy)
	var expectedValue float32
	for i := 1; i <= iters; i++ {
		expectedValue += vanillaCFR.Run(game)
		policy.Update()
	}
	expectedValue /= float32(iters)
	glog.Infof("CFR expected value for pool 1 after %d iterations: %.6f", iters, expectedValue)

	rootStrategy := policy.GetPolicy(game).GetAverageStrategy()
	glog.Infof("CFR mean rate for pool 1: %.6f", meanRate(game.Grid(0), rootStrategy))
}
