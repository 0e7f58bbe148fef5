package bot

import (
	"ctchen222/tictactoe-ai/internal/game"
	"errors"
	"math"
)

// winScore is the score of a win found at depth 0. Deeper wins score less and
// deeper losses score more.
const winScore = 10

// ErrInvalidCallerState is returned when a move is requested for a board that
// is already won or full.
var ErrInvalidCallerState = errors.New("no move possible: board is already decided")

// Analysis is the outcome of one root search.
type Analysis struct {
	Cell  int // chosen cell, -1 when no move was possible
	Score int // minimax value of Cell from the AI's point of view
	Nodes int // number of positions visited
}

// Engine picks optimal moves by exhaustive minimax with alpha-beta pruning.
// It holds no mutable state; concurrent calls need distinct boards.
type Engine struct {
	ai    game.PlayerMark
	human game.PlayerMark
}

// NewEngine returns an engine that plays ai against human.
func NewEngine(ai, human game.PlayerMark) *Engine {
	return &Engine{ai: ai, human: human}
}

// NewDefaultEngine returns the engine for the fixed game roles.
func NewDefaultEngine() *Engine {
	return NewEngine(game.AI, game.Human)
}

// ChooseMove returns the cell the AI should play. The board is used as scratch
// space during the search and is restored before ChooseMove returns.
func (e *Engine) ChooseMove(board *game.Board) (int, error) {
	a, err := e.Analyze(board)
	return a.Cell, err
}

// Analyze runs the root search and reports the chosen cell with its score.
// Ties go to the lowest cell index.
func (e *Engine) Analyze(board *game.Board) (Analysis, error) {
	if board.IsTerminal() {
		return Analysis{Cell: -1}, ErrInvalidCallerState
	}

	s := searcher{ai: e.ai, human: e.human, board: board}
	best := Analysis{Cell: -1, Score: math.MinInt}

	for i := range board {
		if board[i] != game.None {
			continue
		}
		board[i] = e.ai
		score := s.search(0, false, math.MinInt, math.MaxInt)
		board[i] = game.None

		if score > best.Score {
			best.Score = score
			best.Cell = i
		}
	}

	best.Nodes = s.nodes
	return best, nil
}

// searcher carries the per-call state of one root search.
type searcher struct {
	ai, human game.PlayerMark
	board     *game.Board
	nodes     int
}

func (s *searcher) search(depth int, aiTurn bool, alpha, beta int) int {
	s.nodes++
	b := s.board

	// The order of these checks is part of the scoring contract.
	if b.HasWon(s.ai) {
		return winScore - depth
	}
	if b.HasWon(s.human) {
		return depth - winScore
	}
	if b.IsFull() {
		return 0
	}

	if aiTurn {
		best := math.MinInt
		for i := range b {
			if b[i] != game.None {
				continue
			}
			b[i] = s.ai
			score := s.search(depth+1, false, alpha, beta)
			b[i] = game.None

			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	worst := math.MaxInt
	for i := range b {
		if b[i] != game.None {
			continue
		}
		b[i] = s.human
		score := s.search(depth+1, true, alpha, beta)
		b[i] = game.None

		worst = min(worst, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return worst
}
