package poolwars

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/brandtabbott/poolwars/mechanics"
)

// attackEpsilon is the threshold below which an attack rate is treated as
// cooperation. Best-response optima are only accurate to 1e-5, so exact
// zero comparisons would misclassify numerically-zero rates.
const attackEpsilon = 1e-6

// Exchange is one completed round of a match as seen by the deciding
// side: the rate it committed and the rate committed against it.
type Exchange struct {
	Mine   float64
	Theirs float64
}

// Strategy selects an attack rate each round of a repeated attack game.
//
// Decide sees only completed rounds: the history is ordered, from the
// deciding side's own perspective, and empty on round one. Implementations
// must return a rate in [0, PoolSize()] and must not retain or mutate the
// history slice.
//
// Strategies with cross-round memory (Friedman) are scoped to a single
// match; supply a fresh or Reset instance for each independent match.
type Strategy interface {
	// Decide returns this round's attack rate in [0, PoolSize()].
	Decide(oppSize float64, history []Exchange) float64
	// PoolSize is this side's share of total network capacity.
	PoolSize() float64
	// Name identifies the strategy in match logs.
	Name() string
}

func isAttack(x float64) bool {
	return x > attackEpsilon
}

// bestResponse wraps mechanics.BestResponse for strategy use. The
// non-converged fallback of 0 is already feasible, so strategies do not
// branch on it.
func bestResponse(mySize, oppSize, oppAction float64) float64 {
	x, _ := mechanics.BestResponse(mySize, oppSize, oppAction)
	return x
}

// pool carries the identity shared by every strategy variant.
type pool struct {
	size float64
	name string
}

func (p pool) PoolSize() float64 { return p.size }
func (p pool) Name() string      { return p.name }

// Static always commits the same attack rate, clamped to the pool's own
// capacity. A rate of 0 gives an always-cooperating control entrant.
type Static struct {
	pool
	fixedRate float64
}

func NewStatic(size, fixedRate float64, name string) (*Static, error) {
	if err := mechanics.ValidatePoolSize(size); err != nil {
		return nil, err
	}
	if fixedRate < 0 {
		return nil, errors.Errorf("fixed attack rate %v must not be negative", fixedRate)
	}
	if name == "" {
		name = fmt.Sprintf("Static(%g)", fixedRate)
	}

	return &Static{pool{size, name}, fixedRate}, nil
}

func (s *Static) Decide(oppSize float64, history []Exchange) float64 {
	return math.Min(s.fixedRate, s.size)
}

// Random cooperates by default but attacks with probability p, aiming the
// best response at whatever the opponent committed last round.
type Random struct {
	pool
	p   float64
	rng *rand.Rand
}

// NewRandom creates a Random strategy. The seed fixes the instance's
// private random source so runs are reproducible.
func NewRandom(size, p float64, seed int64, name string) (*Random, error) {
	if err := mechanics.ValidatePoolSize(size); err != nil {
		return nil, err
	}
	if p < 0 || p > 1 {
		return nil, errors.Errorf("attack probability %v must lie in [0, 1]", p)
	}
	if name == "" {
		name = "Random"
	}

	return &Random{pool{size, name}, p, rand.New(rand.NewSource(seed))}, nil
}

func (s *Random) Decide(oppSize float64, history []Exchange) float64 {
	if s.rng.Float64() >= s.p {
		return 0
	}

	var oppPrev float64
	if len(history) > 0 {
		oppPrev = history[len(history)-1].Theirs
	}
	return bestResponse(s.size, oppSize, oppPrev)
}

// TitForTat cooperates on round one, then mirrors the opponent:
// retaliation with the best response to their previous rate if it was an
// attack, forgiveness otherwise.
type TitForTat struct {
	pool
}

func NewTitForTat(size float64, name string) (*TitForTat, error) {
	if err := mechanics.ValidatePoolSize(size); err != nil {
		return nil, err
	}
	if name == "" {
		name = "TFT"
	}

	return &TitForTat{pool{size, name}}, nil
}

func (s *TitForTat) Decide(oppSize float64, history []Exchange) float64 {
	if len(history) == 0 {
		return 0
	}

	oppPrev := history[len(history)-1].Theirs
	if !isAttack(oppPrev) {
		return 0
	}
	return bestResponse(s.size, oppSize, oppPrev)
}

// Joss plays TitForTat, but when TitForTat would cooperate it sneaks in an
// unprovoked attack with probability sneakProb, best-responding to a
// peaceful opponent.
type Joss struct {
	pool
	tft       *TitForTat
	sneakProb float64
	rng       *rand.Rand
}

func NewJoss(size, sneakProb float64, seed int64, name string) (*Joss, error) {
	if sneakProb < 0 || sneakProb > 1 {
		return nil, errors.Errorf("sneak probability %v must lie in [0, 1]", sneakProb)
	}
	tft, err := NewTitForTat(size, "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "Joss"
	}

	return &Joss{pool{size, name}, tft, sneakProb, rand.New(rand.NewSource(seed))}, nil
}

func (s *Joss) Decide(oppSize float64, history []Exchange) float64 {
	if x := s.tft.Decide(oppSize, history); isAttack(x) {
		return x
	}

	if s.rng.Float64() < s.sneakProb {
		return bestResponse(s.size, oppSize, 0)
	}
	return 0
}

// Friedman is the grim trigger: it cooperates until the opponent's first
// attack anywhere in the history, then retaliates every remaining round of
// the match even if the opponent returns to cooperation. The grudge never
// lifts within a match; call Reset before reusing the instance.
type Friedman struct {
	pool
	betrayed bool
}

func NewFriedman(size float64, name string) (*Friedman, error) {
	if err := mechanics.ValidatePoolSize(size); err != nil {
		return nil, err
	}
	if name == "" {
		name = "Friedman"
	}

	return &Friedman{pool: pool{size, name}}, nil
}

func (s *Friedman) Decide(oppSize float64, history []Exchange) float64 {
	if !s.betrayed {
		for _, ex := range history {
			if isAttack(ex.Theirs) {
				s.betrayed = true
				break
			}
		}
	}
	if !s.betrayed {
		return 0
	}

	var oppPrev float64
	if len(history) > 0 {
		oppPrev = history[len(history)-1].Theirs
	}
	return bestResponse(s.size, oppSize, oppPrev)
}

// Betrayed reports whether the trigger has fired.
func (s *Friedman) Betrayed() bool { return s.betrayed }

// Reset clears the betrayal flag so the instance can start a fresh match.
func (s *Friedman) Reset() { s.betrayed = false }

// NashSeeker best-responds to the opponent's most recent rate every round,
// opening with the best response to a peaceful opponent. Two NashSeekers
// playing each other walk toward the mutual best-response fixed point of
// the one-shot game.
type NashSeeker struct {
	pool
}

func NewNashSeeker(size float64, name string) (*NashSeeker, error) {
	if err := mechanics.ValidatePoolSize(size); err != nil {
		return nil, err
	}
	if name == "" {
		name = "Nash"
	}

	return &NashSeeker{pool{size, name}}, nil
}

func (s *NashSeeker) Decide(oppSize float64, history []Exchange) float64 {
	var oppPrev float64
	if len(history) > 0 {
		oppPrev = history[len(history)-1].Theirs
	}
	return bestResponse(s.size, oppSize, oppPrev)
}
