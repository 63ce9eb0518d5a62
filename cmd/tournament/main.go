// Run a round-robin tournament between all strategy variants and report
// each entrant's average score, Axelrod style.
package main

import (
	"encoding/gob"
	"flag"
	"os"
	"sort"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"

	"github.com/brandtabbott/poolwars"
)

type entrant struct {
	name  string
	build func(seed int64) (poolwars.Strategy, error)
}

// roster lists the tournament entrants. Every pairing gets freshly built
// instances: Friedman's grudge and the stochastic strategies' random
// state must not leak between matches.
func roster(m float64) []entrant {
	return []entrant{
		{"TFT", func(seed int64) (poolwars.Strategy, error) {
			return poolwars.NewTitForTat(m, "TFT")
		}},
		{"Friedman", func(seed int64) (poolwars.Strategy, error) {
			return poolwars.NewFriedman(m, "Friedman")
		}},
		{"Joss", func(seed int64) (poolwars.Strategy, error) {
			return poolwars.NewJoss(m, 0.1, seed, "Joss")
		}},
		{"Random", func(seed int64) (poolwars.Strategy, error) {
			return poolwars.NewRandom(m, 0.5, seed, "Random")
		}},
		{"Nash", func(seed int64) (poolwars.Strategy, error) {
			return poolwars.NewNashSeeker(m, "Nash")
		}},
		{"Peace", func(seed int64) (poolwars.Strategy, error) {
			return poolwars.NewStatic(m, 0, "Peace")
		}},
	}
}

func main() {
	poolSize := flag.Float64("pool_size", 0.2, "Pool size shared by every entrant")
	rounds := flag.Int("rounds", 200, "Rounds per match")
	seed := flag.Int64("seed", 1234, "Base random seed for stochastic strategies")
	output := flag.String("output", "", "Optional file to save all match logs to (gob, gzipped)")
	flag.Parse()

	entrants := roster(*poolSize)
	totals := make(map[string]float64)
	matchLogs := make(map[string][]poolwars.Record)

	nextSeed := *seed
	for _, ea := range entrants {
		for _, eb := range entrants {
			agentA, err := ea.build(nextSeed)
			if err != nil {
				glog.Fatal(err)
			}
			agentB, err := eb.build(nextSeed + 1)
			if err != nil {
				glog.Fatal(err)
			}
			nextSeed += 2

			match := poolwars.NewMatch(agentA, agentB)
			log, err := match.Run(*rounds)
			if err != nil {
				glog.Fatal(err)
			}

			score := log[len(log)-1].CumPayoffA
			totals[ea.name] += score
			matchLogs[ea.name+" vs "+eb.name] = log
			glog.Infof("%-8s vs %-8s: %.6f vs %.6f",
				ea.name, eb.name, score, log[len(log)-1].CumPayoffB)
		}
	}

	type ranked struct {
		name  string
		score float64
	}
	ranking := make([]ranked, 0, len(entrants))
	for _, e := range entrants {
		ranking = append(ranking, ranked{e.name, totals[e.name] / float64(len(entrants))})
	}
	sort.Slice(ranking, func(i, j int) bool {
		return ranking[i].score > ranking[j].score
	})

	glog.Info("Tournament results (average score per match):")
	for i, r := range ranking {
		glog.Infof("%d. %-8s %.6f", i+1, r.name, r.score)
	}

	if *output != "" {
		glog.Infof("Saving match logs to %v", *output)
		if err := saveLogs(matchLogs, *output); err != nil {
			glog.Fatal(err)
		}
	}
}

func saveLogs(logs map[string][]poolwars.Record, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	defer w.Close()

	enc := gob.NewEncoder(w)
	return enc.Encode(logs)
}
