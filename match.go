package poolwars

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/brandtabbott/poolwars/mechanics"
)

// Record is one completed round of a match, as consumed by aggregation
// and plotting tools.
type Record struct {
	Round      int
	SizeA      float64
	SizeB      float64
	AttackA    float64
	AttackB    float64
	PayoffA    float64
	PayoffB    float64
	CumPayoffA float64
	CumPayoffB float64
}

// Match plays repeated attack-game rounds between two strategies and
// logs every round.
//
// The driver owns the shared history: it is stored once from A's
// perspective, swapped on read for B, and rebuilt from scratch on every
// Run. The driver never resets the strategies themselves, so a strategy
// with cross-round memory (Friedman) must be freshly constructed or Reset
// by the caller between independent matches.
type Match struct {
	a, b Strategy

	// history is the shared record of committed rates, from A's
	// perspective. Append-only within a run.
	history []Exchange
}

func NewMatch(a, b Strategy) *Match {
	return &Match{a: a, b: b}
}

// Run plays the given number of rounds and returns the complete ordered
// log. Any previous run's history and totals are discarded first.
func (m *Match) Run(rounds int) ([]Record, error) {
	if rounds <= 0 {
		return nil, errors.Errorf("rounds must be positive, got %d", rounds)
	}
	if err := mechanics.ValidatePoolSize(m.a.PoolSize()); err != nil {
		return nil, errors.Wrapf(err, "strategy %s", m.a.Name())
	}
	if err := mechanics.ValidatePoolSize(m.b.PoolSize()); err != nil {
		return nil, errors.Wrapf(err, "strategy %s", m.b.Name())
	}

	m.history = m.history[:0]
	log := make([]Record, 0, rounds)
	var cumA, cumB float64

	for t := 1; t <= rounds; t++ {
		// Both sides decide on completed rounds only. Neither Decide may
		// observe the other's current-round rate, so the order of the
		// two calls is immaterial.
		xA := m.a.Decide(m.b.PoolSize(), m.history)
		xB := m.b.Decide(m.a.PoolSize(), m.swappedHistory())

		if err := mechanics.ValidateAction(xA, m.a.PoolSize()); err != nil {
			return nil, errors.Wrapf(err, "round %d, strategy %s", t, m.a.Name())
		}
		if err := mechanics.ValidateAction(xB, m.b.PoolSize()); err != nil {
			return nil, errors.Wrapf(err, "round %d, strategy %s", t, m.b.Name())
		}

		pA, pB := mechanics.AbsolutePayoff(m.a.PoolSize(), m.b.PoolSize(), xA, xB)
		cumA += pA
		cumB += pB

		m.history = append(m.history, Exchange{Mine: xA, Theirs: xB})
		log = append(log, Record{
			Round:      t,
			SizeA:      m.a.PoolSize(),
			SizeB:      m.b.PoolSize(),
			AttackA:    xA,
			AttackB:    xB,
			PayoffA:    pA,
			PayoffB:    pB,
			CumPayoffA: cumA,
			CumPayoffB: cumB,
		})
		glog.V(1).Infof("round %d: %s x=%.6f p=%.6f | %s x=%.6f p=%.6f",
			t, m.a.Name(), xA, pA, m.b.Name(), xB, pB)
	}

	return log, nil
}

// swappedHistory is the shared history from B's perspective.
func (m *Match) swappedHistory() []Exchange {
	swapped := make([]Exchange, len(m.history))
	for i, ex := range m.history {
		swapped[i] = Exchange{Mine: ex.Theirs, Theirs: ex.Mine}
	}

	return swapped
}
