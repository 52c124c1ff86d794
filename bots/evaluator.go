package bots

import "chesscoach/rules"

// Score is a material balance from white's point of view, or one of the
// sentinels below.
type Score int

const (
	// MateScore is returned for a checkmated position, negative when white
	// is the side mated.
	MateScore Score = 1_000_000
	// Infinity bounds the alpha-beta window and is strictly larger than any
	// evaluation.
	Infinity Score = 1 << 30
)

var pieceValues = map[rules.PieceKind]Score{
	rules.Pawn:   1,
	rules.Knight: 3,
	rules.Bishop: 3,
	rules.Rook:   5,
	rules.Queen:  9,
	rules.King:   0,
}

func PieceValue(k rules.PieceKind) Score {
	return pieceValues[k]
}

// MaterialEvaluator counts material and recognises mate and stalemate.
type MaterialEvaluator struct{}

func (e MaterialEvaluator) Evaluate(pos rules.Position) Score {
	if pos.IsCheckmate() {
		if pos.SideToMove() == rules.White {
			return -MateScore
		}
		return MateScore
	}
	if pos.IsStalemate() {
		return 0
	}
	return e.materialScore(pos)
}

func (e MaterialEvaluator) materialScore(pos rules.Position) Score {
	var score Score
	for _, kind := range rules.PieceKinds {
		delta := pos.PieceCount(kind, rules.White) - pos.PieceCount(kind, rules.Black)
		score += Score(delta) * pieceValues[kind]
	}
	return score
}
