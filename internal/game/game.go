package game

import "errors"

// Errors returned by Move.
var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrGameOver     = errors.New("game already finished")
)

// Game is one human-vs-AI session: the board plus whose turn it is.
type Game struct {
	Board       Board
	CurrentTurn PlayerMark
	Winner      PlayerMark
	Status      Status
	Moves       int
}

func NewGame() *Game {
	return &Game{
		CurrentTurn: Human,
		Winner:      None,
		Status:      StatusInProgress,
	}
}

// Move places the mark of the player to move on cell and advances the game.
func (g *Game) Move(cell int) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if cell < CellMin || cell > CellMax {
		return ErrOutOfBounds
	}
	if g.Board[cell] != None {
		return ErrCellOccupied
	}

	g.Board[cell] = g.CurrentTurn
	g.Moves++

	if g.Board.HasWon(g.CurrentTurn) {
		g.Winner = g.CurrentTurn
		g.Status = StatusWon
		return nil
	}
	if g.Board.IsFull() {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentTurn = g.CurrentTurn.Opponent()
	return nil
}

// IsOver reports whether the game reached a win or a draw.
func (g *Game) IsOver() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Reset clears the board and gives the first move back to the human.
func (g *Game) Reset() {
	*g = *NewGame()
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	cp := *g
	return &cp
}
