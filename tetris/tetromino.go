package tetris

import "fmt"

// Shape identifies a tetromino kind. The empty Shape is an empty cell.
type Shape string

const (
	I Shape = "I"
	O Shape = "O"
	S Shape = "S"
	Z Shape = "Z"
	J Shape = "J"
	L Shape = "L"
	T Shape = "T"
)

// Shapes lists every kind in catalog order. Spawns pick from it uniformly.
var Shapes = []Shape{I, O, S, Z, J, L, T}

// Offset is a cell position relative to the tetromino anchor.
// DX grows to the right and DY grows downwards.
type Offset struct {
	DX, DY int
}

/*
Every shape has four orientations with exactly four cells each. Orientation 0 is
the spawn geometry. The anchor is marked with A.

.	I		.	O		.	S		.	Z

.	O A O O		.	A O		.	  A O		.	O A
.			.	O O		.	O O		.	  O O

.	J		.	L		.	T

.	O		.	    O		.	  O
.	O A O		.	O A O		.	O A O
*/
var geometry = map[Shape][4][4]Offset{
	I: {
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
	},
	// the O doesn't rotate, all of its orientations are the same.
	O: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	S: {
		{{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
		{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
		{{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
		{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
	// Z mirrors S.
	Z: {
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{0, -1}, {-1, 0}, {0, 0}, {-1, 1}},
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{0, -1}, {-1, 0}, {0, 0}, {-1, 1}},
	},
	J: {
		{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {0, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {0, 0}, {-1, 1}, {0, 1}},
	},
	L: {
		{{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
	},
	T: {
		{{0, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {1, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
}

// Cells returns the offsets occupied by shape s in the given orientation.
// The orientation wraps modulo 4. It panics when s is not a known shape.
func Cells(s Shape, orientation int) [4]Offset {
	g, ok := geometry[s]
	if !ok {
		panic(fmt.Sprintf("tetris: unknown shape %q", s))
	}
	return g[wrap(orientation)]
}

func wrap(orientation int) int {
	return ((orientation % 4) + 4) % 4
}

// Tetromino is the piece currently falling down the stack.
// X and Y are the anchor in stack coordinates, Y may be negative while the
// piece enters the stack from the top.
type Tetromino struct {
	Shape       Shape
	X, Y        int
	Orientation int
}

// Cells returns the absolute stack positions the tetromino occupies.
func (t *Tetromino) Cells() [4]Offset {
	var cells [4]Offset
	for i, c := range Cells(t.Shape, t.Orientation) {
		cells[i] = Offset{DX: t.X + c.DX, DY: t.Y + c.DY}
	}
	return cells
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
