package rules

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// DragonBoard is a Position backed by github.com/dylhunn/dragontoothmg, which
// mutates one bitboard set in place and hands back an undo closure per move.
type DragonBoard struct {
	board dragontoothmg.Board
	undo  []func()
	moves []Move
	draws drawn
}

func NewDragonBoard(fen string) (*DragonBoard, error) {
	// dragontoothmg does not report malformed input, so validate first.
	if _, err := chess.FEN(fen); err != nil {
		return nil, errors.Wrapf(err, "parse fen %q", fen)
	}
	b := &DragonBoard{board: dragontoothmg.ParseFen(fen)}
	b.draws.push(b.board.ToFen())
	return b, nil
}

func (b *DragonBoard) LegalMoves() []Move {
	legal := b.board.GenerateLegalMoves()
	moves := make([]Move, 0, len(legal))
	for i := range legal {
		moves = append(moves, fromDragonMove(legal[i]))
	}
	return moves
}

func (b *DragonBoard) Push(m Move) error {
	legal := b.board.GenerateLegalMoves()
	for i := range legal {
		if fromDragonMove(legal[i]) != m {
			continue
		}
		b.undo = append(b.undo, b.board.Apply(legal[i]))
		b.moves = append(b.moves, m)
		b.draws.push(b.board.ToFen())
		return nil
	}
	return illegal(m)
}

func (b *DragonBoard) Pop() {
	if len(b.undo) == 0 {
		panic("rules: pop on an empty move stack")
	}
	last := len(b.undo) - 1
	b.undo[last]()
	b.undo = b.undo[:last]
	b.moves = b.moves[:last]
	b.draws.pop()
}

func (b *DragonBoard) bitboards(c Color) *dragontoothmg.Bitboards {
	if c == White {
		return &b.board.White
	}
	return &b.board.Black
}

func (b *DragonBoard) PieceAt(sq Square) (Piece, bool) {
	mask := uint64(1) << sq
	for _, c := range []Color{White, Black} {
		bb := b.bitboards(c)
		if bb.All&mask == 0 {
			continue
		}
		for _, k := range PieceKinds {
			if kindBits(bb, k)&mask != 0 {
				return Piece{Kind: k, Color: c}, true
			}
		}
	}
	return Piece{}, false
}

func (b *DragonBoard) PieceCount(kind PieceKind, c Color) int {
	return bits.OnesCount64(kindBits(b.bitboards(c), kind))
}

func (b *DragonBoard) SideToMove() Color {
	if b.board.Wtomove {
		return White
	}
	return Black
}

func (b *DragonBoard) inCheck() bool {
	us := b.SideToMove()
	king := b.bitboards(us).Kings
	if king == 0 {
		return false
	}
	return b.attacked(uint8(bits.TrailingZeros64(king)), us.Other())
}

// attacked reports whether sq is attacked by any piece of color by.
func (b *DragonBoard) attacked(sq uint8, by Color) bool {
	them := b.bitboards(by)
	occupied := b.board.White.All | b.board.Black.All
	if knightAttacks[sq]&them.Knights != 0 || kingAttacks[sq]&them.Kings != 0 {
		return true
	}
	if pawnAttacks(them.Pawns, by)&(uint64(1)<<sq) != 0 {
		return true
	}
	if dragontoothmg.CalculateBishopMoveBitboard(sq, occupied)&(them.Bishops|them.Queens) != 0 {
		return true
	}
	return dragontoothmg.CalculateRookMoveBitboard(sq, occupied)&(them.Rooks|them.Queens) != 0
}

func (b *DragonBoard) IsCheckmate() bool {
	return len(b.board.GenerateLegalMoves()) == 0 && b.inCheck()
}

func (b *DragonBoard) IsStalemate() bool {
	return len(b.board.GenerateLegalMoves()) == 0 && !b.inCheck()
}

func (b *DragonBoard) IsGameOver() bool {
	if len(b.board.GenerateLegalMoves()) == 0 {
		return true
	}
	return b.draws.automatic(b, b.FEN())
}

func (b *DragonBoard) Result() Outcome { return result(b) }

func (b *DragonBoard) FEN() string { return b.board.ToFen() }

func (b *DragonBoard) History() []Move {
	return append([]Move(nil), b.moves...)
}

func fromDragonMove(m dragontoothmg.Move) Move {
	mv := Move{From: Square(m.From()), To: Square(m.To())}
	switch m.Promote() {
	case dragontoothmg.Knight:
		mv.Promotion = Knight
	case dragontoothmg.Bishop:
		mv.Promotion = Bishop
	case dragontoothmg.Rook:
		mv.Promotion = Rook
	case dragontoothmg.Queen:
		mv.Promotion = Queen
	}
	return mv
}

func kindBits(bb *dragontoothmg.Bitboards, k PieceKind) uint64 {
	switch k {
	case Pawn:
		return bb.Pawns
	case Knight:
		return bb.Knights
	case Bishop:
		return bb.Bishops
	case Rook:
		return bb.Rooks
	case Queen:
		return bb.Queens
	case King:
		return bb.Kings
	}
	return 0
}

const (
	fileA uint64 = 0x0101010101010101
	fileH uint64 = 0x8080808080808080
)

func pawnAttacks(pawns uint64, c Color) uint64 {
	if c == White {
		return (pawns<<7)&^fileH | (pawns<<9)&^fileA
	}
	return (pawns>>7)&^fileA | (pawns>>9)&^fileH
}

var knightAttacks, kingAttacks [64]uint64

func init() {
	knightSteps := [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < 64; sq++ {
		knightAttacks[sq] = stepMask(sq, knightSteps)
		kingAttacks[sq] = stepMask(sq, kingSteps)
	}
}

func stepMask(sq int, steps [][2]int) uint64 {
	var mask uint64
	file, rank := sq%8, sq/8
	for _, s := range steps {
		f, r := file+s[0], rank+s[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			mask |= uint64(1) << (r*8 + f)
		}
	}
	return mask
}
