// bot.go
package bots

import (
	"github.com/pkg/errors"

	"chesscoach/rules"
)

// ChessBot picks the opponent's reply. BestMove returns rules.NoMove when the
// position has no legal move; the caller must not treat that as a failure.
type ChessBot interface {
	BestMove(pos rules.Position) rules.Move
	Name() string
}

// PositionEvaluator scores a position from white's point of view without
// mutating it.
type PositionEvaluator interface {
	Evaluate(pos rules.Position) Score
}

const (
	PolicySearch  = "search"
	PolicyRandom  = "random"
	PolicyNewborn = "newborn"
)

const DefaultDepth = 2

type botOptions struct {
	depth     int
	seed      uint64
	evaluator PositionEvaluator
}

type Option func(o *botOptions)

func WithDepth(depth int) Option {
	return func(o *botOptions) {
		if depth >= 0 {
			o.depth = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *botOptions) {
		o.seed = seed
	}
}

func WithEvaluator(e PositionEvaluator) Option {
	return func(o *botOptions) {
		if e != nil {
			o.evaluator = e
		}
	}
}

func newOptions(opts []Option) botOptions {
	o := botOptions{depth: DefaultDepth, evaluator: MaterialEvaluator{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds the policy registered under name.
func New(name string, opts ...Option) (ChessBot, error) {
	switch name {
	case PolicySearch:
		return NewMinimaxBot(opts...), nil
	case PolicyRandom:
		return NewRandomBot(opts...), nil
	case PolicyNewborn:
		return NewNewbornBot(), nil
	}
	return nil, errors.Errorf("unknown policy %q", name)
}
