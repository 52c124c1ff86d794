package bots

import "chesscoach/rules"

// NewbornBot always plays the first legal move. Its games depend only on the
// backend's move order, which makes it the baseline opponent for replayable
// sessions and driver tests.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(pos rules.Position) rules.Move {
	moves := pos.LegalMoves()
	if len(moves) > 0 {
		return moves[0]
	}
	return rules.NoMove
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
