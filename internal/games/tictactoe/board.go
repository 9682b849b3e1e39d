package tictactoe

// Mark is the content of a cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// String returns the mark as drawn on the board.
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Other returns the opponent's mark.
func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

// Cells is the number of board cells, indexed row-major from the top left.
const Cells = 9

// Board is a 3x3 grid.
type Board [Cells]Mark

// Line is three cell indexes.
type Line [3]int

// Lines lists every winning line: rows, columns, then diagonals.
var Lines = [8]Line{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the mark holding a full line and that line.
func Winner(b Board) (Mark, Line, bool) {
	for _, l := range Lines {
		m := b[l[0]]
		if m != Empty && b[l[1]] == m && b[l[2]] == m {
			return m, l, true
		}
	}
	return Empty, Line{}, false
}

// Full reports whether no empty cell is left.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// State is one game of tic-tac-toe.
type State struct {
	Board  Board
	Next   Mark // mark placed by the next move
	Winner Mark
	Line   Line
	Draw   bool
	Moves  int
}

// NewState returns an empty board with X to move.
func NewState() State {
	return State{Next: X}
}

// Over reports whether the game has been decided.
func (s State) Over() bool {
	return s.Winner != Empty || s.Draw
}

// Play places the next mark on cell. Moves on occupied or out-of-range
// cells and moves after the game is decided are ignored.
func Play(prev State, cell int) State {
	if prev.Over() || cell < 0 || cell >= Cells || prev.Board[cell] != Empty {
		return prev
	}

	s := prev
	s.Board[cell] = s.Next
	s.Moves++
	if m, l, ok := Winner(s.Board); ok {
		s.Winner, s.Line = m, l
		return s
	}
	if s.Board.Full() {
		s.Draw = true
		return s
	}
	s.Next = s.Next.Other()
	return s
}

// OnLine reports whether cell is part of the winning line.
func (s State) OnLine(cell int) bool {
	if s.Winner == Empty {
		return false
	}
	for _, c := range s.Line {
		if c == cell {
			return true
		}
	}
	return false
}
