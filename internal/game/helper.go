package game

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

// Status is the lifecycle state of a single game.
type Status string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// The human always opens; the AI answers.
	Human = PlayerX
	AI    = PlayerO

	// Game statuses
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// Board
const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize

	CellMin = 0            // First index of the board
	CellMax = CellCount - 1 // Last index of the board
)

// Opponent returns the other player's mark. None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// Valid reports whether m is one of the three cell values.
func (m PlayerMark) Valid() bool {
	return m == None || m == PlayerX || m == PlayerO
}
