// Package rules exposes the chess rules capability the engine searches over.
// A Position is mutated in place with Push and Pop and must be used from a
// single goroutine.
package rules

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Position interface {
	// LegalMoves returns the legal moves in a stable order.
	LegalMoves() []Move
	// Push plays m. An illegal m is rejected and the position is untouched.
	Push(m Move) error
	// Pop takes back the last pushed move.
	Pop()
	PieceAt(sq Square) (Piece, bool)
	PieceCount(kind PieceKind, c Color) int
	SideToMove() Color
	IsCheckmate() bool
	IsStalemate() bool
	IsGameOver() bool
	Result() Outcome
	FEN() string
	History() []Move
}

// repetitionKey drops the move clocks from a FEN so that positions reached
// at different points of the game compare equal.
func repetitionKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fen
	}
	return strings.Join(fields[:4], " ")
}

func halfmoveClock(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}

// insufficientMaterial reports a dead position: no pawns, rooks or queens,
// and either a single minor piece or only bishops that all stand on squares
// of one colour.
func insufficientMaterial(p Position) bool {
	knights, bishops := 0, 0
	for _, c := range []Color{White, Black} {
		if p.PieceCount(Pawn, c)+p.PieceCount(Rook, c)+p.PieceCount(Queen, c) > 0 {
			return false
		}
		knights += p.PieceCount(Knight, c)
		bishops += p.PieceCount(Bishop, c)
	}
	if knights+bishops <= 1 {
		return true
	}
	if knights > 0 {
		return false
	}
	light, dark := false, false
	for sq := Square(0); sq < NoSquare; sq++ {
		if pc, ok := p.PieceAt(sq); ok && pc.Kind == Bishop {
			if (sq.File()+sq.Rank())%2 == 0 {
				dark = true
			} else {
				light = true
			}
		}
	}
	return !(light && dark)
}

// drawn tracks the automatic draws both backends share. Only fivefold
// repetition and the seventy-five-move rule end the game; the threefold and
// fifty-move draws must be claimed and do not.
type drawn struct {
	keys []string
}

func (d *drawn) push(fen string) { d.keys = append(d.keys, repetitionKey(fen)) }
func (d *drawn) pop()            { d.keys = d.keys[:len(d.keys)-1] }

// repeated reports whether the current position occurred at least n times.
func (d *drawn) repeated(n int) bool {
	if len(d.keys) == 0 {
		return false
	}
	cur := d.keys[len(d.keys)-1]
	seen := 0
	for _, k := range d.keys {
		if k == cur {
			seen++
		}
	}
	return seen >= n
}

func (d *drawn) automatic(p Position, fen string) bool {
	return insufficientMaterial(p) || halfmoveClock(fen) >= 150 || d.repeated(5)
}

func result(p Position) Outcome {
	switch {
	case p.IsCheckmate():
		if p.SideToMove() == White {
			return BlackWon
		}
		return WhiteWon
	case p.IsGameOver():
		return Draw
	}
	return NoOutcome
}

const (
	BackendNotnil      = "notnil"
	BackendDragontooth = "dragontooth"
)

// New loads fen into the named rules backend.
func New(backend, fen string) (Position, error) {
	switch backend {
	case BackendNotnil, "":
		b, err := NewBoard(fen)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendDragontooth:
		b, err := NewDragonBoard(fen)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, errors.Errorf("unknown rules backend %q", backend)
}
