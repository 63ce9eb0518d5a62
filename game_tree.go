package poolwars

import (
	"fmt"

	"github.com/timpalpant/go-cfr"

	"github.com/brandtabbott/poolwars/mechanics"
)

// stage marks how far through the one-shot game a node is.
type stage uint8

const (
	pool1ToMove stage = iota
	pool2ToMove
	gameOver
)

var stageStr = [...]string{
	"Pool1ToMove",
	"Pool2ToMove",
	"GameOver",
}

func (s stage) String() string {
	return stageStr[s]
}

// AttackGame is the one-shot attack game with both pools' rate spaces
// discretized to a uniform grid, exposed as a cfr.GameTreeNode so the
// mixed equilibrium can be computed with CFR and cross-checked against
// iterated best response.
//
// The simultaneous move is modeled sequentially: pool 1 picks a grid rate,
// then pool 2 picks one, but pool 2's infoset does not reveal pool 1's
// choice, so information-wise the moves are concurrent. There are no
// chance nodes.
type AttackGame struct {
	m1, m2 float64
	grid1  []float64
	grid2  []float64

	stage  stage
	x1, x2 float64 // committed rates; valid once past the owning stage

	children []AttackGame
	parent   *AttackGame
}

// Verify that we implement the interface.
var _ cfr.GameTreeNode = &AttackGame{}

// NewAttackGame creates the root node for pools of the given sizes, with
// each side's feasible rate range [0, m] discretized to points grid
// entries.
func NewAttackGame(m1, m2 float64, points int) (*AttackGame, error) {
	if err := mechanics.ValidatePoolSize(m1); err != nil {
		return nil, err
	}
	if err := mechanics.ValidatePoolSize(m2); err != nil {
		return nil, err
	}
	if points < 2 {
		return nil, fmt.Errorf("rate grid needs at least 2 points, got %d", points)
	}

	return &AttackGame{
		m1:    m1,
		m2:    m2,
		grid1: rateGrid(m1, points),
		grid2: rateGrid(m2, points),
		stage: pool1ToMove,
	}, nil
}

// rateGrid spans [0, m] with n uniformly spaced rates. The endpoints are
// always included: 0 is full cooperation, m is an all-in attack.
func rateGrid(m float64, n int) []float64 {
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = m * float64(i) / float64(n-1)
	}

	return grid
}

// Grid returns the discretized rate space of the given player.
func (g *AttackGame) Grid(player int) []float64 {
	if player == 0 {
		return g.grid1
	}

	return g.grid2
}

// Type implements cfr.GameTreeNode.
func (g *AttackGame) Type() cfr.NodeType {
	if g.stage == gameOver {
		return cfr.TerminalNodeType
	}

	return cfr.PlayerNodeType
}

// Player implements cfr.GameTreeNode.
func (g *AttackGame) Player() int {
	if g.stage == pool2ToMove {
		return 1
	}

	return 0
}

// InfoSet implements cfr.GameTreeNode. Every node of a stage maps to the
// same infoset for the player to move: pool 2 must not be able to
// distinguish nodes by pool 1's committed rate.
func (g *AttackGame) InfoSet(player int) cfr.InfoSet {
	return &attackInfoSet{player: uint8(player), stage: uint8(g.stage)}
}

// InfoSetKey implements cfr.GameTreeNode.
func (g *AttackGame) InfoSetKey(player int) []byte {
	return g.InfoSet(player).Key()
}

// Utility implements cfr.GameTreeNode.
func (g *AttackGame) Utility(player int) float64 {
	if g.Type() != cfr.TerminalNodeType {
		panic("cannot get the utility of a non-terminal node")
	}

	p1, p2 := mechanics.AbsolutePayoff(g.m1, g.m2, g.x1, g.x2)
	if player == 0 {
		return p1
	}

	return p2
}

func (g *AttackGame) buildChildren() {
	if g.children != nil {
		return // Already built.
	}

	switch g.stage {
	case pool1ToMove:
		g.children = make([]AttackGame, len(g.grid1))
		for i, x := range g.grid1 {
			child := *g
			child.children = nil
			child.parent = g
			child.stage = pool2ToMove
			child.x1 = x
			g.children[i] = child
		}
	case pool2ToMove:
		g.children = make([]AttackGame, len(g.grid2))
		for i, x := range g.grid2 {
			child := *g
			child.children = nil
			child.parent = g
			child.stage = gameOver
			child.x2 = x
			g.children[i] = child
		}
	case gameOver:
	}
}

// NumChildren implements cfr.GameTreeNode.
func (g *AttackGame) NumChildren() int {
	switch g.stage {
	case pool1ToMove:
		return len(g.grid1)
	case pool2ToMove:
		return len(g.grid2)
	}

	return 0
}

// GetChild implements cfr.GameTreeNode.
func (g *AttackGame) GetChild(i int) cfr.GameTreeNode {
	g.buildChildren()
	return &g.children[i]
}

// Parent implements cfr.GameTreeNode.
func (g *AttackGame) Parent() cfr.GameTreeNode {
	return g.parent
}

// GetChildProbability implements cfr.GameTreeNode.
func (g *AttackGame) GetChildProbability(i int) float64 {
	panic("the attack game has no chance nodes")
}

// SampleChild implements cfr.GameTreeNode.
func (g *AttackGame) SampleChild() (cfr.GameTreeNode, float64) {
	panic("the attack game has no chance nodes")
}

// Close implements cfr.GameTreeNode.
func (g *AttackGame) Close() {
	g.children = nil
}

// String implements fmt.Stringer.
func (g *AttackGame) String() string {
	return fmt.Sprintf("%v: m1=%v, m2=%v, x1=%v, x2=%v",
		g.stage, g.m1, g.m2, g.x1, g.x2)
}

// attackInfoSet identifies a decision point: which player is to move at
// which stage. The opponent's pending rate is deliberately absent.
type attackInfoSet struct {
	player uint8
	stage  uint8
}

// Key implements cfr.InfoSet.
func (is *attackInfoSet) Key() []byte {
	buf, _ := is.MarshalBinary()
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (is *attackInfoSet) MarshalBinary() ([]byte, error) {
	return []byte{is.player, is.stage}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (is *attackInfoSet) UnmarshalBinary(buf []byte) error {
	if len(buf) != 2 {
		return fmt.Errorf("infoset key must be 2 bytes, got %d", len(buf))
	}

	is.player = buf[0]
	is.stage = buf[1]
	return nil
}
