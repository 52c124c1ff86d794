package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chesscoach/bots"
	"chesscoach/rules"
)

// scriptedBot replays fixed moves in order.
type scriptedBot struct {
	moves []string
}

func (b *scriptedBot) BestMove(pos rules.Position) rules.Move {
	if len(b.moves) == 0 {
		return rules.NoMove
	}
	m, err := rules.ParseMove(b.moves[0])
	if err != nil {
		panic(err)
	}
	b.moves = b.moves[1:]
	return m
}

func (b *scriptedBot) Name() string { return "scripted" }

func fromFEN(fen string) PositionFactory {
	return func() (rules.Position, error) {
		return rules.New(rules.BackendNotnil, fen)
	}
}

func newSession(t *testing.T, fen string, bot bots.ChessBot, human rules.Color) *Session {
	t.Helper()
	s, err := NewSession(fromFEN(fen), bot, human)
	require.NoError(t, err)
	return s
}

func TestPlayValidMove(t *testing.T) {
	s := newSession(t, rules.StartFEN, bots.NewNewbornBot(), rules.White)
	require.True(t, s.HumanToMove())

	turn, err := s.Play("e2e4")
	require.NoError(t, err)
	require.Equal(t, "e2e4", turn.Human.String())
	require.Equal(t, explanations[rules.Pawn], turn.HumanNote)
	require.False(t, turn.Reply.IsNone())
	require.NotEmpty(t, turn.ReplyNote)
	require.Equal(t, rules.NoOutcome, turn.Outcome)
	require.Len(t, s.History(), 2)
	require.True(t, s.HumanToMove())
}

func TestPlayRejectsBadInput(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"e2", rules.ErrMoveSyntax},
		{"hello", rules.ErrMoveSyntax},
		{"e2e4x", rules.ErrMoveSyntax},
		{"e2e5", rules.ErrIllegalMove},
		{"e7e5", rules.ErrIllegalMove},
		{"e1e2", rules.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := newSession(t, rules.StartFEN, bots.NewNewbornBot(), rules.White)
			before := s.FEN()
			_, err := s.Play(tt.input)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, before, s.FEN())
			require.Empty(t, s.History())
		})
	}
}

func TestPlayPromotesToQueenByDefault(t *testing.T) {
	s := newSession(t, "8/4P1k1/8/8/8/8/6K1/8 w - - 0 1", bots.NewNewbornBot(), rules.White)
	turn, err := s.Play("e7e8")
	require.NoError(t, err)
	require.Equal(t, "e7e8q", turn.Human.String())

	s = newSession(t, "8/4P1k1/8/8/8/8/6K1/8 w - - 0 1", bots.NewNewbornBot(), rules.White)
	turn, err = s.Play("e7e8n")
	require.NoError(t, err)
	require.Equal(t, "e7e8n", turn.Human.String())
}

func TestPlayDoesNotPromoteOtherPieces(t *testing.T) {
	// only pawns get the queen-promotion retry
	s := newSession(t, "8/6k1/8/8/8/8/8/R5K1 w - - 0 1", bots.NewNewbornBot(), rules.White)
	_, err := s.Play("a1a8")
	require.NoError(t, err)

	s = newSession(t, "8/6k1/8/8/8/8/8/R5K1 w - - 0 1", bots.NewNewbornBot(), rules.White)
	_, err = s.Play("g1g8")
	require.ErrorIs(t, err, rules.ErrIllegalMove)
}

func TestFoolsMateEndsGame(t *testing.T) {
	s := newSession(t, rules.StartFEN, &scriptedBot{moves: []string{"e7e5", "d8h4"}}, rules.White)

	turn, err := s.Play("f2f3")
	require.NoError(t, err)
	require.Equal(t, "e7e5", turn.Reply.String())

	turn, err = s.Play("g2g4")
	require.NoError(t, err)
	require.Equal(t, "d8h4", turn.Reply.String())
	require.Equal(t, explanations[rules.Queen], turn.ReplyNote)
	require.Equal(t, rules.BlackWon, turn.Outcome)
	require.True(t, s.IsOver())
	require.False(t, s.HumanToMove())

	_, err = s.Play("a2a3")
	require.ErrorIs(t, err, ErrGameOver)
	require.Equal(t, []string{"1. f2f3", "2. e7e5", "3. g2g4", "4. d8h4"}, Review(s.History()))
}

func TestHumanMatesBot(t *testing.T) {
	s := newSession(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", bots.NewMinimaxBot(), rules.White)
	turn, err := s.Play("a1a8")
	require.NoError(t, err)
	require.True(t, turn.Reply.IsNone())
	require.Equal(t, rules.WhiteWon, turn.Outcome)
}

func TestHumanAsBlack(t *testing.T) {
	s := newSession(t, rules.StartFEN, bots.NewNewbornBot(), rules.Black)
	require.False(t, s.HumanToMove())

	_, err := s.Play("e7e5")
	require.ErrorIs(t, err, ErrNotYourTurn)

	reply, note := s.BotMove()
	require.False(t, reply.IsNone())
	require.NotEmpty(t, note)
	require.True(t, s.HumanToMove())

	again, _ := s.BotMove()
	require.True(t, again.IsNone(), "bot must not move on the human's turn")

	_, err = s.Play("e7e5")
	require.NoError(t, err)
	require.Len(t, s.History(), 3)
}

func TestUndo(t *testing.T) {
	s := newSession(t, rules.StartFEN, bots.NewNewbornBot(), rules.White)
	start := s.FEN()
	require.ErrorIs(t, s.Undo(), ErrNothingToUndo)

	_, err := s.Play("d2d4")
	require.NoError(t, err)
	require.NoError(t, s.Undo())
	require.Equal(t, start, s.FEN())
	require.Empty(t, s.History())

	black := newSession(t, rules.StartFEN, bots.NewNewbornBot(), rules.Black)
	black.BotMove()
	require.ErrorIs(t, black.Undo(), ErrNothingToUndo)
	require.Len(t, black.History(), 1)
}

func TestReset(t *testing.T) {
	s := newSession(t, rules.StartFEN, bots.NewNewbornBot(), rules.White)
	_, err := s.Play("e2e4")
	require.NoError(t, err)
	require.NoError(t, s.Reset())
	require.Empty(t, s.History())
	require.Equal(t, rules.NoOutcome, s.Outcome())
}

func TestSessionWithSearchBot(t *testing.T) {
	factory := func() (rules.Position, error) { return rules.New(rules.BackendDragontooth, rules.StartFEN) }
	s, err := NewSession(factory, bots.NewMinimaxBot(bots.WithDepth(2)), rules.White)
	require.NoError(t, err)

	for _, mv := range []string{"e2e4", "d2d4", "g1f3"} {
		turn, err := s.Play(mv)
		if err != nil {
			// an earlier reply may have taken away this move
			require.ErrorIs(t, err, rules.ErrIllegalMove)
			continue
		}
		require.False(t, turn.Reply.IsNone())
	}
	require.True(t, s.HumanToMove())
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(fromFEN(rules.StartFEN), bots.NewNewbornBot(), rules.NoColor)
	require.Error(t, err)

	_, err = NewSession(fromFEN("garbage"), bots.NewNewbornBot(), rules.White)
	require.Error(t, err)
}

func TestExplain(t *testing.T) {
	pos := rules.NewStandardBoard()
	m, err := rules.ParseMove("g1f3")
	require.NoError(t, err)
	require.Equal(t, explanations[rules.Knight], Explain(pos, m))

	m, err = rules.ParseMove("e4e5")
	require.NoError(t, err)
	require.Equal(t, defaultExplanation, Explain(pos, m))
}

func TestDraw(t *testing.T) {
	pos := rules.NewStandardBoard()

	lines := strings.Split(strings.TrimRight(Draw(pos, false), "\n"), "\n")
	require.Len(t, lines, 9)
	require.Equal(t, "8 ♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜", lines[0])
	require.Equal(t, "4 - - - - - - - -", lines[4])
	require.Equal(t, "1 ♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖", lines[7])
	require.Equal(t, "  a b c d e f g h", lines[8])

	flipped := strings.Split(Draw(pos, true), "\n")
	require.Equal(t, "1 ♖ ♘ ♗ ♔ ♕ ♗ ♘ ♖", flipped[0])
	require.Equal(t, "  h g f e d c b a", flipped[8])
}
