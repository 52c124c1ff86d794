package game

import "chesscoach/rules"

var explanations = map[rules.PieceKind]string{
	rules.Pawn:   "Pawn advance fights for the centre.",
	rules.Knight: "Knight heads for key squares.",
	rules.Bishop: "Bishop works along the long diagonal.",
	rules.Rook:   "Rook takes control of a file or rank.",
	rules.Queen:  "Queen moves out; bring her out with care.",
	rules.King:   "Keep the king safe and avoid exposing it.",
}

const defaultExplanation = "Watch your defence and the centre."

// Explain gives a one-line rationale for m, looked up by the kind of piece
// standing on its origin square in pos.
func Explain(pos rules.Position, m rules.Move) string {
	p, ok := pos.PieceAt(m.From)
	if !ok {
		return defaultExplanation
	}
	if note, ok := explanations[p.Kind]; ok {
		return note
	}
	return defaultExplanation
}
