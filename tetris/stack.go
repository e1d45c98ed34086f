package tetris

const (
	// Width is the number of columns of the stack.
	Width = 10
	// Height is the number of rows of the stack.
	Height = 20
)

// Stack is the playfield. 20 rows x 10 columns.
// Columns are 0 > 9 left to right and represent the X axis.
// Rows are 0 > 19 top to bottom and represent the Y axis.
// An empty Shape is an empty cell, otherwise it holds the shape that landed there.
type Stack [Height][Width]Shape

// Cell returns the content of the cell at x, y. Positions outside of the stack
// are reported as empty.
func (s *Stack) Cell(x, y int) Shape {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return ""
	}
	return s[y][x]
}

// Empty reports whether no cell of the stack is taken.
func (s *Stack) Empty() bool {
	for _, row := range s {
		for _, c := range row {
			if c != "" {
				return false
			}
		}
	}
	return true
}

// IsPlaceable reports whether shape can sit at x, y with the given orientation.
//
//	  0 1 2 3 4 5 6 7 8 9
//	-1 . . . . O . . . . .   <- above the stack, only the X bounds are checked
//	0  . . . O O O . . . .
//	1  . . . . . . . . . .
//
// Cells below the last row, outside of the columns or on top of a taken cell
// make the position invalid.
func (s *Stack) IsPlaceable(shape Shape, x, y, orientation int) bool {
	for _, c := range Cells(shape, orientation) {
		cx, cy := x+c.DX, y+c.DY
		if cx < 0 || cx >= Width || cy > Height-1 {
			return false
		}
		if cy < 0 {
			continue
		}
		if s[cy][cx] != "" {
			return false
		}
	}
	return true
}

// Commit writes the shape into the stack and clears the complete lines.
// Cells still above the stack are dropped. It returns the number of lines cleared.
func (s *Stack) Commit(shape Shape, x, y, orientation int) int {
	for _, c := range Cells(shape, orientation) {
		cx, cy := x+c.DX, y+c.DY
		if cy >= 0 && cy < Height && cx >= 0 && cx < Width {
			s[cy][cx] = shape
		}
	}
	return s.clearFullLines()
}

// clearFullLines scans the stack from the bottom up. Every full row pulls the
// rows above it one step down and the same row is checked again, since it now
// holds what used to be above it.
func (s *Stack) clearFullLines() int {
	var cleared int
	for y := Height - 1; y >= 0; y-- {
		if !s.full(y) {
			continue
		}
		cleared++
		for y2 := y; y2 > 0; y2-- {
			s[y2] = s[y2-1]
		}
		s[0] = [Width]Shape{}
		y++
	}
	return cleared
}

func (s *Stack) full(y int) bool {
	for _, c := range s[y] {
		if c == "" {
			return false
		}
	}
	return true
}
