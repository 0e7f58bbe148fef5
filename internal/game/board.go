package game

import "strings"

// Board is a fixed 3x3 board stored row-major: 0,1,2 is the top row.
type Board [CellCount]PlayerMark

// Lines holds every winning triple.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// columns
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diagonals
	{0, 4, 8}, {2, 4, 6},
}

// HasWon reports whether player holds all three cells of any line.
func (b Board) HasWon(player PlayerMark) bool {
	if player == None {
		return false
	}
	for _, ln := range Lines {
		if b[ln[0]] == player && b[ln[1]] == player && b[ln[2]] == player {
			return true
		}
	}
	return false
}

// IsFull reports whether no cell is empty.
func (b Board) IsFull() bool {
	for _, c := range b {
		if c == None {
			return false
		}
	}
	return true
}

// IsTerminal reports whether either player has a line or the board is full.
func (b Board) IsTerminal() bool {
	return b.HasWon(PlayerX) || b.HasWon(PlayerO) || b.IsFull()
}

// EmptyCells returns the indices of the empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, CellCount)
	for i, c := range b {
		if c == None {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells hold mark.
func (b Board) Count(mark PlayerMark) int {
	n := 0
	for _, c := range b {
		if c == mark {
			n++
		}
	}
	return n
}

// Rows converts the board to a slice of rows, for clients that render a grid.
func (b Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, BoardSize)
	for r := range rows {
		rows[r] = make([]PlayerMark, BoardSize)
		copy(rows[r], b[r*BoardSize:(r+1)*BoardSize])
	}
	return rows
}

// ParseBoard reads a 9 character string such as "X-O-X----" where '-', ' '
// and '.' are empty cells.
func ParseBoard(s string) (Board, bool) {
	var b Board
	if len(s) != CellCount {
		return b, false
	}
	for i, r := range s {
		switch r {
		case 'X', 'x':
			b[i] = PlayerX
		case 'O', 'o':
			b[i] = PlayerO
		case '-', ' ', '.':
			b[i] = None
		default:
			return Board{}, false
		}
	}
	return b, true
}

// String renders the board in the format accepted by ParseBoard.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for _, c := range b {
		if c == None {
			sb.WriteByte('-')
			continue
		}
		sb.WriteString(string(c))
	}
	return sb.String()
}
