// Package game drives one human-versus-bot game over a rules.Position.
package game

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"chesscoach/bots"
	"chesscoach/rules"
)

var (
	ErrGameOver      = errors.New("game is over - no moves allowed")
	ErrNotYourTurn   = errors.New("not the human's turn")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// PositionFactory creates the position a new game starts from.
type PositionFactory func() (rules.Position, error)

// Turn reports what happened after one human move.
type Turn struct {
	Human     rules.Move
	HumanNote string
	Reply     rules.Move // rules.NoMove when the game ended on the human move
	ReplyNote string
	Outcome   rules.Outcome
}

// Session owns the position for a whole game and lends it to the bot for the
// duration of one decision. It is not safe for concurrent use.
type Session struct {
	pos         rules.Position
	bot         bots.ChessBot
	human       rules.Color
	newPosition PositionFactory
}

func NewSession(newPosition PositionFactory, bot bots.ChessBot, human rules.Color) (*Session, error) {
	if human != rules.White && human != rules.Black {
		return nil, errors.Errorf("invalid human color %v", human)
	}
	s := &Session{bot: bot, human: human, newPosition: newPosition}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset starts a new game from the factory position.
func (s *Session) Reset() error {
	pos, err := s.newPosition()
	if err != nil {
		return errors.Wrap(err, "create position")
	}
	s.pos = pos
	log.Info().Str("bot", s.bot.Name()).Str("human", s.human.String()).Msg("new game")
	return nil
}

func (s *Session) Human() rules.Color { return s.human }
func (s *Session) BotName() string    { return s.bot.Name() }

func (s *Session) HumanToMove() bool {
	return !s.pos.IsGameOver() && s.pos.SideToMove() == s.human
}

// Play validates and applies the human move given in coordinate notation,
// then lets the bot answer unless the game is over. Rejected input leaves the
// position untouched.
func (s *Session) Play(input string) (Turn, error) {
	if s.pos.IsGameOver() {
		return Turn{}, ErrGameOver
	}
	if s.pos.SideToMove() != s.human {
		return Turn{}, ErrNotYourTurn
	}
	m, err := rules.ParseMove(input)
	if err != nil {
		return Turn{}, err
	}
	m, err = s.resolve(m)
	if err != nil {
		return Turn{}, err
	}

	turn := Turn{Human: m, HumanNote: Explain(s.pos, m)}
	if err := s.pos.Push(m); err != nil {
		return Turn{}, errors.Wrapf(err, "apply %s", m)
	}
	log.Info().Str("move", m.String()).Msg("human moved")

	turn.Reply, turn.ReplyNote = s.BotMove()
	turn.Outcome = s.pos.Result()
	return turn, nil
}

// BotMove lets the bot play if it is its turn and the game is still on.
func (s *Session) BotMove() (rules.Move, string) {
	if s.pos.IsGameOver() || s.pos.SideToMove() == s.human {
		return rules.NoMove, ""
	}
	reply := s.bot.BestMove(s.pos)
	if reply.IsNone() {
		return rules.NoMove, ""
	}
	note := Explain(s.pos, reply)
	if err := s.pos.Push(reply); err != nil {
		// The bot only picks from the legal move list.
		panic(errors.Wrapf(err, "bot %s played %s", s.bot.Name(), reply))
	}
	log.Info().Str("bot", s.bot.Name()).Str("move", reply.String()).Msg("bot moved")
	return reply, note
}

// resolve checks m against the legal moves. A pawn move onto the last rank
// given without a promotion piece is retried once as a queen promotion.
func (s *Session) resolve(m rules.Move) (rules.Move, error) {
	legal := s.pos.LegalMoves()
	if rules.Contains(legal, m) {
		return m, nil
	}
	if m.Promotion == rules.NoKind && s.reachesLastRank(m) {
		promo := m
		promo.Promotion = rules.Queen
		if rules.Contains(legal, promo) {
			return promo, nil
		}
	}
	return rules.NoMove, errors.Wrapf(rules.ErrIllegalMove, "%s", m)
}

func (s *Session) reachesLastRank(m rules.Move) bool {
	p, ok := s.pos.PieceAt(m.From)
	if !ok || p.Kind != rules.Pawn {
		return false
	}
	return m.To.Rank() == 0 || m.To.Rank() == 7
}

// Undo takes back moves until it is the human's turn again, at most one
// human move and the bot reply that followed it.
func (s *Session) Undo() error {
	history := s.pos.History()
	if len(history) == 0 {
		return ErrNothingToUndo
	}
	if s.pos.SideToMove() == s.human {
		if len(history) < 2 {
			return ErrNothingToUndo
		}
		s.pos.Pop()
	}
	s.pos.Pop()
	return nil
}

func (s *Session) IsOver() bool           { return s.pos.IsGameOver() }
func (s *Session) Outcome() rules.Outcome { return s.pos.Result() }
func (s *Session) FEN() string            { return s.pos.FEN() }
func (s *Session) History() []rules.Move  { return s.pos.History() }

func (s *Session) Board() string {
	return Draw(s.pos, s.human == rules.Black)
}
