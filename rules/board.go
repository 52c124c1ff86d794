package rules

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Board is a Position backed by github.com/notnil/chess. Positions in that
// library are immutable, so make/unmake keeps a stack of them.
type Board struct {
	stack []*chess.Position
	moves []Move
	draws drawn
}

func NewStandardBoard() *Board {
	return newBoard(chess.NewGame().Position())
}

func NewBoard(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fen %q", fen)
	}
	return newBoard(chess.NewGame(opt).Position()), nil
}

func newBoard(pos *chess.Position) *Board {
	b := &Board{stack: []*chess.Position{pos}}
	b.draws.push(pos.String())
	return b
}

func (b *Board) top() *chess.Position {
	return b.stack[len(b.stack)-1]
}

func (b *Board) LegalMoves() []Move {
	valid := b.top().ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, m := range valid {
		moves = append(moves, fromChessMove(m))
	}
	return moves
}

func (b *Board) Push(m Move) error {
	for _, cm := range b.top().ValidMoves() {
		if fromChessMove(cm) != m {
			continue
		}
		next := b.top().Update(cm)
		b.stack = append(b.stack, next)
		b.moves = append(b.moves, m)
		b.draws.push(next.String())
		return nil
	}
	return illegal(m)
}

func (b *Board) Pop() {
	if len(b.stack) == 1 {
		panic("rules: pop on an empty move stack")
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.moves = b.moves[:len(b.moves)-1]
	b.draws.pop()
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.top().Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return Piece{}, false
	}
	return Piece{Kind: fromPieceType(p.Type()), Color: fromChessColor(p.Color())}, true
}

func (b *Board) PieceCount(kind PieceKind, c Color) int {
	board := b.top().Board()
	n := 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p != chess.NoPiece && fromPieceType(p.Type()) == kind && fromChessColor(p.Color()) == c {
			n++
		}
	}
	return n
}

func (b *Board) SideToMove() Color {
	return fromChessColor(b.top().Turn())
}

func (b *Board) IsCheckmate() bool {
	return b.top().Status() == chess.Checkmate
}

func (b *Board) IsStalemate() bool {
	return b.top().Status() == chess.Stalemate
}

func (b *Board) IsGameOver() bool {
	if b.top().Status() != chess.NoMethod {
		return true
	}
	return b.draws.automatic(b, b.FEN())
}

func (b *Board) Result() Outcome { return result(b) }

func (b *Board) FEN() string { return b.top().String() }

func (b *Board) History() []Move {
	return append([]Move(nil), b.moves...)
}

func fromChessMove(m *chess.Move) Move {
	return Move{
		From:      Square(m.S1()),
		To:        Square(m.S2()),
		Promotion: fromPieceType(m.Promo()),
	}
}

func fromPieceType(t chess.PieceType) PieceKind {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoKind
}

func fromChessColor(c chess.Color) Color {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	}
	return NoColor
}
