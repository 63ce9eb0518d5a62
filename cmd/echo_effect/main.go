// Play TitForTat against Joss and trace how a single sneak attack
// echoes: TitForTat mirrors the sneak one round late, Joss mirrors the
// retaliation, and the pair keeps trading attacks long after the
// original defection.
package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/brandtabbott/poolwars"
	"github.com/brandtabbott/poolwars/mechanics"
)

func main() {
	poolSize := flag.Float64("pool_size", 0.2, "Pool size shared by both sides")
	sneakProb := flag.Float64("sneak_prob", 0.1, "Joss per-round sneak probability")
	rounds := flag.Int("rounds", 100, "Rounds to play")
	seed := flag.Int64("seed", 1234, "Random seed for Joss")
	flag.Parse()

	m := *poolSize
	tft, err := poolwars.NewTitForTat(m, "TFT")
	if err != nil {
		glog.Fatal(err)
	}
	joss, err := poolwars.NewJoss(m, *sneakProb, *seed, "Joss")
	if err != nil {
		glog.Fatal(err)
	}

	match := poolwars.NewMatch(tft, joss)
	records, err := match.Run(*rounds)
	if err != nil {
		glog.Fatal(err)
	}

	peace, _ := mechanics.AbsolutePayoff(m, m, 0, 0)

	// Revenue density is payoff per unit of pool size; all-peace pins it
	// at peace/m for both sides.
	attacked := 0
	for _, rec := range records {
		if rec.AttackA > 0 || rec.AttackB > 0 {
			attacked++
		}
		glog.Infof("Round %d: tft=%.6f joss=%.6f => r_tft=%.6f r_joss=%.6f",
			rec.Round, rec.AttackA, rec.AttackB,
			rec.PayoffA/m, rec.PayoffB/m)
	}

	last := records[len(records)-1]
	peaceTotal := peace * float64(*rounds)
	glog.Infof("Rounds with an attack on the table: %d of %d", attacked, *rounds)
	glog.Infof("Cumulative payoffs: tft=%.6f joss=%.6f, all-peace would pay %.6f each",
		last.CumPayoffA, last.CumPayoffB, peaceTotal)
}
