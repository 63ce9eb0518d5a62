package poolwars

import (
	"bytes"
	"math"
	"testing"

	"github.com/timpalpant/go-cfr"
	"github.com/timpalpant/go-cfr/tree"

	"github.com/brandtabbott/poolwars/mechanics"
)

func TestAttackGameShape(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.2, 5)
	if err != nil {
		t.Fatal(err)
	}

	if game.Type() != cfr.PlayerNodeType {
		t.Errorf("root type = %v, expected player node", game.Type())
	}
	if game.Player() != 0 {
		t.Errorf("root player = %d, expected 0", game.Player())
	}
	if game.NumChildren() != 5 {
		t.Errorf("root has %d children, expected 5", game.NumChildren())
	}

	child := game.GetChild(2)
	if child.Type() != cfr.PlayerNodeType {
		t.Errorf("second-stage type = %v, expected player node", child.Type())
	}
	if child.Player() != 1 {
		t.Errorf("second-stage player = %d, expected 1", child.Player())
	}
	if child.NumChildren() != 5 {
		t.Errorf("second stage has %d children, expected 5", child.NumChildren())
	}

	leaf := child.GetChild(0)
	if leaf.Type() != cfr.TerminalNodeType {
		t.Errorf("leaf type = %v, expected terminal", leaf.Type())
	}
	if leaf.NumChildren() != 0 {
		t.Errorf("leaf has %d children, expected 0", leaf.NumChildren())
	}
	if leaf.Parent() != child {
		t.Error("leaf does not point back at its parent")
	}
}

func TestAttackGameGrid(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.4, 5)
	if err != nil {
		t.Fatal(err)
	}

	grid := game.Grid(0)
	if grid[0] != 0 || grid[len(grid)-1] != 0.2 {
		t.Errorf("pool 1 grid spans [%v, %v], expected [0, 0.2]", grid[0], grid[len(grid)-1])
	}
	grid = game.Grid(1)
	if grid[0] != 0 || grid[len(grid)-1] != 0.4 {
		t.Errorf("pool 2 grid spans [%v, %v], expected [0, 0.4]", grid[0], grid[len(grid)-1])
	}
}

func TestAttackGameUtility(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.3, 5)
	if err != nil {
		t.Fatal(err)
	}

	// Both pools pick their first grid rate: full peace.
	leaf := game.GetChild(0).GetChild(0)
	if u := leaf.Utility(0); math.Abs(u-0.2) > 1e-12 {
		t.Errorf("peaceful utility for pool 1 = %v, expected 0.2", u)
	}
	if u := leaf.Utility(1); math.Abs(u-0.3) > 1e-12 {
		t.Errorf("peaceful utility for pool 2 = %v, expected 0.3", u)
	}

	// A non-trivial leaf must agree with the closed-form payoff.
	leaf = game.GetChild(1).GetChild(2)
	x1 := game.Grid(0)[1]
	x2 := game.Grid(1)[2]
	p1, p2 := mechanics.AbsolutePayoff(0.2, 0.3, x1, x2)
	if u := leaf.Utility(0); math.Abs(u-p1) > 1e-12 {
		t.Errorf("utility for pool 1 = %v, expected %v", u, p1)
	}
	if u := leaf.Utility(1); math.Abs(u-p2) > 1e-12 {
		t.Errorf("utility for pool 2 = %v, expected %v", u, p2)
	}
}

// TestAttackGameInfoSetHidesOpponentRate pins the simultaneity of the
// one-shot game: pool 2's infoset is identical no matter what pool 1
// committed, so CFR cannot condition pool 2's play on it.
func TestAttackGameInfoSetHidesOpponentRate(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.2, 5)
	if err != nil {
		t.Fatal(err)
	}

	first := game.GetChild(0).InfoSet(1).Key()
	for i := 1; i < game.NumChildren(); i++ {
		if key := game.GetChild(i).InfoSet(1).Key(); !bytes.Equal(key, first) {
			t.Errorf("pool 2 infoset differs across pool 1 rates: %q vs %q", key, first)
		}
	}

	if rootKey := game.InfoSet(0).Key(); bytes.Equal(rootKey, first) {
		t.Error("pool 1's decision infoset collides with pool 2's")
	}
}

// TestAttackGameInfoSetKey pins the two-byte key encoding: player then
// stage. The stage byte is what separates pool 1's decision from pool
// 2's, so a collapsed or misencoded stage would merge their infosets.
func TestAttackGameInfoSetKey(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.2, 5)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := game.InfoSetKey(0), []byte{0, 0}; !bytes.Equal(got, want) {
		t.Errorf("root infoset key = %v, expected %v", got, want)
	}
	child := game.GetChild(3)
	if got, want := child.InfoSetKey(1), []byte{1, 1}; !bytes.Equal(got, want) {
		t.Errorf("second-stage infoset key = %v, expected %v", got, want)
	}

	if !bytes.Equal(child.InfoSetKey(1), child.InfoSet(1).Key()) {
		t.Error("InfoSetKey does not match InfoSet(player).Key()")
	}

	var is attackInfoSet
	if err := is.UnmarshalBinary(child.InfoSet(1).Key()); err != nil {
		t.Fatal(err)
	}
	if is.player != 1 || is.stage != 1 {
		t.Errorf("round-tripped infoset = %+v, expected player 1 at stage 1", is)
	}
	if err := is.UnmarshalBinary([]byte{1}); err == nil {
		t.Error("short infoset key accepted")
	}
}

// TestVanillaCFROnAttackGame runs the solver end to end on a small
// discretized game and checks the averaged root value stays inside the
// feasible payoff range for pool 1.
func TestVanillaCFROnAttackGame(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.2, 5)
	if err != nil {
		t.Fatal(err)
	}

	policy := cfr.NewPolicyTable(cfr.DiscountParams{})
	vanillaCFR := cfr.New(policy)
	var expectedValue float32
	nIter := 10
	for i := 0; i < nIter; i++ {
		expectedValue += vanillaCFR.Run(game)
		policy.Update()
	}
	expectedValue /= float32(nIter)

	if math.IsNaN(float64(expectedValue)) || expectedValue < -1 || expectedValue > 1 {
		t.Errorf("CFR expected value = %v, outside the feasible payoff range", expectedValue)
	}

	strategy := policy.GetPolicy(game).GetAverageStrategy()
	if len(strategy) != game.NumChildren() {
		t.Fatalf("root strategy has %d actions, expected %d", len(strategy), game.NumChildren())
	}
	var total float32
	for _, p := range strategy {
		total += p
	}
	if math.Abs(float64(total)-1) > 1e-4 {
		t.Errorf("root strategy weights sum to %v, expected 1", total)
	}
}

func TestAttackGameTreeSize(t *testing.T) {
	game, err := NewAttackGame(0.2, 0.2, 5)
	if err != nil {
		t.Fatal(err)
	}

	nodes := 0
	tree.Visit(game, func(node cfr.GameTreeNode) {
		nodes++
	})

	// Root + 5 second-stage nodes + 25 leaves.
	if want := 1 + 5 + 25; nodes != want {
		t.Errorf("visited %d nodes, expected %d", nodes, want)
	}
}

func TestNewAttackGameValidation(t *testing.T) {
	if _, err := NewAttackGame(1.2, 0.2, 5); err == nil {
		t.Error("pool size above 1 accepted")
	}
	if _, err := NewAttackGame(0.2, 0, 5); err == nil {
		t.Error("zero pool size accepted")
	}
	if _, err := NewAttackGame(0.2, 0.2, 1); err == nil {
		t.Error("single-point grid accepted")
	}
}
