package bots

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"chesscoach/rules"
)

// Searcher runs fixed-depth minimax over a shared Position using make/unmake.
// It keeps no reference to the position once a call returns.
type Searcher struct {
	Evaluator PositionEvaluator
	collector statsCollector
}

func NewSearcher(e PositionEvaluator) *Searcher {
	if e == nil {
		e = MaterialEvaluator{}
	}
	return &Searcher{Evaluator: e}
}

// Search is plain alpha-beta. Moves are tried in the order the position
// lists them and only a strictly better score replaces the current best, so
// the first of several equal moves wins. Leaves return rules.NoMove.
func Search(pos rules.Position, depth int, alpha, beta Score, maximizing bool) (Score, rules.Move) {
	return NewSearcher(nil).Search(pos, depth, alpha, beta, maximizing)
}

func (s *Searcher) Search(pos rules.Position, depth int, alpha, beta Score, maximizing bool) (Score, rules.Move) {
	s.collector.node()
	if depth == 0 || pos.IsGameOver() {
		s.collector.leaf()
		return s.Evaluator.Evaluate(pos), rules.NoMove
	}

	bestMove := rules.NoMove
	if maximizing {
		bestScore := -Infinity
		for _, move := range pos.LegalMoves() {
			score := s.child(pos, move, func() Score {
				score, _ := s.Search(pos, depth-1, alpha, beta, false)
				return score
			})
			if score > bestScore {
				bestScore, bestMove = score, move
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				s.collector.cutoff()
				break
			}
		}
		return bestScore, bestMove
	}

	bestScore := Infinity
	for _, move := range pos.LegalMoves() {
		score := s.child(pos, move, func() Score {
			score, _ := s.Search(pos, depth-1, alpha, beta, true)
			return score
		})
		if score < bestScore {
			bestScore, bestMove = score, move
		}
		beta = min(beta, score)
		if beta <= alpha {
			s.collector.cutoff()
			break
		}
	}
	return bestScore, bestMove
}

// Minimax is the same search without pruning. It visits every node up to
// depth and exists to check Search against.
func (s *Searcher) Minimax(pos rules.Position, depth int, maximizing bool) (Score, rules.Move) {
	s.collector.node()
	if depth == 0 || pos.IsGameOver() {
		s.collector.leaf()
		return s.Evaluator.Evaluate(pos), rules.NoMove
	}

	bestScore, bestMove := Infinity, rules.NoMove
	if maximizing {
		bestScore = -Infinity
	}
	for _, move := range pos.LegalMoves() {
		score := s.child(pos, move, func() Score {
			score, _ := s.Minimax(pos, depth-1, !maximizing)
			return score
		})
		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore, bestMove = score, move
		}
	}
	return bestScore, bestMove
}

// child plays move, scores the resulting node and always takes the move back,
// including when the recursion panics.
func (s *Searcher) child(pos rules.Position, move rules.Move, recurse func() Score) Score {
	if err := pos.Push(move); err != nil {
		panic(errors.Wrapf(err, "search: push %s", move))
	}
	defer pos.Pop()
	return recurse()
}

// Stats returns the counters gathered since the last ResetStats.
func (s *Searcher) Stats() SearchStats {
	return s.collector.complete()
}

func (s *Searcher) ResetStats() {
	s.collector.start()
}

type MinimaxBot struct {
	Depth    int
	searcher *Searcher
}

func NewMinimaxBot(opts ...Option) *MinimaxBot {
	o := newOptions(opts)
	return &MinimaxBot{
		Depth:    o.depth,
		searcher: NewSearcher(o.evaluator),
	}
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.Depth)
}

// BestMove searches for the side to move: white maximises, black minimises.
func (b *MinimaxBot) BestMove(pos rules.Position) rules.Move {
	if pos == nil {
		return rules.NoMove
	}

	b.searcher.ResetStats()
	score, move := b.searcher.Search(pos, b.Depth, -Infinity, Infinity, pos.SideToMove() == rules.White)
	stats := b.searcher.Stats()

	log.Debug().
		Str("bot", b.Name()).
		Str("move", move.String()).
		Int("score", int(score)).
		Int64("nodes", stats.Nodes).
		Int64("cutoffs", stats.Cutoffs).
		Dur("elapsed", stats.Duration).
		Msg("search finished")
	return move
}

// LastStats reports the counters of the most recent BestMove call.
func (b *MinimaxBot) LastStats() SearchStats {
	return b.searcher.collector.stats
}
