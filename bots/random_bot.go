package bots

import (
	"golang.org/x/exp/rand"

	"chesscoach/rules"
)

// RandomBot picks uniformly among the legal moves without evaluating them.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(opts ...Option) *RandomBot {
	o := newOptions(opts)
	return &RandomBot{rng: rand.New(rand.NewSource(o.seed))}
}

func (b *RandomBot) BestMove(pos rules.Position) rules.Move {
	moves := pos.LegalMoves()
	if len(moves) > 0 {
		return moves[b.rng.Intn(len(moves))]
	}
	return rules.NoMove
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
