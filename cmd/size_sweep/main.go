// Sweep pool 1's size against a fixed opponent and report how much a
// unilateral best-response attack gains over peaceful mining at each size.
package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/brandtabbott/poolwars/mechanics"
)

func main() {
	minSize := flag.Float64("min_size", 0.01, "Smallest pool 1 size")
	maxSize := flag.Float64("max_size", 0.45, "Largest pool 1 size")
	steps := flag.Int("steps", 50, "Number of sizes to sample")
	oppSize := flag.Float64("opp_size", 0.20, "Fixed pool 2 size")
	flag.Parse()

	glog.Infof("Unilateral attack gain vs sleeping opponent of size %.2f:", *oppSize)
	for i := 0; i < *steps; i++ {
		m1 := *minSize + (*maxSize-*minSize)*float64(i)/float64(*steps-1)

		peace, _ := mechanics.AbsolutePayoff(m1, *oppSize, 0, 0)
		x, ok := mechanics.BestResponse(m1, *oppSize, 0)
		if !ok {
			glog.Warningf("m1=%.4f: best response did not converge, skipping", m1)
			continue
		}
		attack, _ := mechanics.AbsolutePayoff(m1, *oppSize, x, 0)

		gainPct := (attack - peace) / peace * 100
		glog.Infof("m1=%.4f: x=%.6f, peace=%.6f, attack=%.6f, gain=%+.4f%%",
			m1, x, peace, attack, gainPct)
	}
}
