package tetris

import "testing"

func TestCells(t *testing.T) {
	t.Run("every orientation has 4 distinct cells", func(t *testing.T) {
		for _, s := range Shapes {
			for o := range 4 {
				seen := map[Offset]bool{}
				for _, c := range Cells(s, o) {
					seen[c] = true
				}
				if len(seen) != 4 {
					t.Errorf("%s orientation %d: wanted 4 distinct cells, got %d", s, o, len(seen))
				}
			}
		}
	})

	t.Run("orientation 0 is the spawn geometry", func(t *testing.T) {
		want := map[Shape][4]Offset{
			I: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
			O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			S: {{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
			Z: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
			J: {{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
			L: {{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
			T: {{0, -1}, {-1, 0}, {0, 0}, {1, 0}},
		}
		for s, w := range want {
			if got := Cells(s, 0); got != w {
				t.Errorf("%s: wanted %v, got %v", s, w, got)
			}
		}
	})

	t.Run("O is the same in every orientation", func(t *testing.T) {
		for o := 1; o < 4; o++ {
			if Cells(O, o) != Cells(O, 0) {
				t.Errorf("O orientation %d differs from orientation 0", o)
			}
		}
	})

	t.Run("orientation wraps", func(t *testing.T) {
		if Cells(J, 4) != Cells(J, 0) {
			t.Errorf("wanted orientation 4 to be orientation 0")
		}
		if Cells(J, -1) != Cells(J, 3) {
			t.Errorf("wanted orientation -1 to be orientation 3")
		}
	})

	t.Run("unknown shape panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Errorf("expected a panic")
			}
		}()
		Cells(Shape("X"), 0)
	})
}

func TestTetrominoCells(t *testing.T) {
	tt := &Tetromino{Shape: T, X: 4, Y: 10, Orientation: 2}
	want := [4]Offset{{3, 10}, {4, 10}, {5, 10}, {4, 11}}
	if got := tt.Cells(); got != want {
		t.Errorf("wanted %v, got %v", want, got)
	}
}
