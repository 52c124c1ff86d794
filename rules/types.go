package rules

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMoveSyntax  = errors.New("malformed move notation")
	ErrIllegalMove = errors.New("illegal move")
)

type Color int8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "-"
}

type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceKinds lists every real piece kind, pawn first.
var PieceKinds = []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	}
	return ""
}

type Piece struct {
	Kind  PieceKind
	Color Color
}

// Symbol returns the FEN letter of the piece, upper case for white.
func (p Piece) Symbol() string {
	s := p.Kind.String()
	if p.Color == White {
		return strings.ToUpper(s)
	}
	return s
}

// Square indexes the board from a1 = 0 to h8 = 63.
type Square uint8

const NoSquare Square = 64

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, errors.Wrapf(ErrMoveSyntax, "bad square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// NoMove is returned wherever no move is available.
var NoMove = Move{}

func (m Move) IsNone() bool { return m == NoMove }

func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	return m.From.String() + m.To.String() + m.Promotion.String()
}

// ParseMove decodes coordinate notation such as "e2e4" or "e7e8q". It only
// checks the syntax; legality is up to the Position.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return NoMove, errors.Wrapf(ErrMoveSyntax, "%q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return NoMove, errors.Wrapf(ErrMoveSyntax, "bad promotion piece in %q", s)
		}
	}
	return m, nil
}

type Outcome string

const (
	NoOutcome Outcome = "*"
	WhiteWon  Outcome = "1-0"
	BlackWon  Outcome = "0-1"
	Draw      Outcome = "1/2-1/2"
)

// Winner reports the winning color, or NoColor for draws and unfinished games.
func (o Outcome) Winner() Color {
	switch o {
	case WhiteWon:
		return White
	case BlackWon:
		return Black
	}
	return NoColor
}

func (o Outcome) String() string { return string(o) }

// Contains reports whether m is one of moves.
func Contains(moves []Move, m Move) bool {
	for _, mv := range moves {
		if mv == m {
			return true
		}
	}
	return false
}

func illegal(m Move) error {
	return errors.Wrap(ErrIllegalMove, fmt.Sprint(m))
}
