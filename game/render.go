package game

import (
	"fmt"
	"strings"

	"chesscoach/rules"
)

var symbols = map[rules.Piece]string{
	{Kind: rules.King, Color: rules.White}:   "♔",
	{Kind: rules.Queen, Color: rules.White}:  "♕",
	{Kind: rules.Rook, Color: rules.White}:   "♖",
	{Kind: rules.Bishop, Color: rules.White}: "♗",
	{Kind: rules.Knight, Color: rules.White}: "♘",
	{Kind: rules.Pawn, Color: rules.White}:   "♙",
	{Kind: rules.King, Color: rules.Black}:   "♚",
	{Kind: rules.Queen, Color: rules.Black}:  "♛",
	{Kind: rules.Rook, Color: rules.Black}:   "♜",
	{Kind: rules.Bishop, Color: rules.Black}: "♝",
	{Kind: rules.Knight, Color: rules.Black}: "♞",
	{Kind: rules.Pawn, Color: rules.Black}:   "♟",
}

// Draw renders the board as text, white at the bottom unless flipped.
func Draw(pos rules.Position, flipped bool) string {
	var sb strings.Builder
	files := "a b c d e f g h"
	if flipped {
		files = "h g f e d c b a"
	}
	for y := 0; y < 8; y++ {
		rank := 7 - y
		if flipped {
			rank = y
		}
		fmt.Fprintf(&sb, "%d ", rank+1)
		for x := 0; x < 8; x++ {
			file := x
			if flipped {
				file = 7 - x
			}
			cell := "-"
			if p, ok := pos.PieceAt(rules.NewSquare(file, rank)); ok {
				cell = symbols[p]
			}
			sb.WriteString(cell)
			if x < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  " + files + "\n")
	return sb.String()
}

// Review numbers the moves played so far, one per line.
func Review(moves []rules.Move) []string {
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = fmt.Sprintf("%d. %s", i+1, m)
	}
	return lines
}
