package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/template"

	"blockdrop/highscore"
	"blockdrop/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos = "\033[H" // Reset cursor position to 0,0

	empty = "  "
	ghost = "[]"

	// inner width of the board frame.
	boardWidth = tetris.Width * len(empty)
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Shape]string{
	tetris.I: Cyan,
	tetris.J: Blue,
	tetris.L: Orange,
	tetris.O: Yellow,
	tetris.S: Green,
	tetris.Z: Red,
	tetris.T: Magenta,
}

type templateData struct {
	Local   *tetris.Tetris
	Name    string
	NoGhost bool
}

type lobbyData struct {
	Message string
	Scores  []highscore.Entry
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData

	mu sync.Mutex
}

func newRender(l *slog.Logger, ng bool, name string) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:   os.Stdout,
		logger:   l,
		template: tmp,
		templateData: &templateData{
			Name:    name,
			NoGhost: ng,
		},
	}, nil
}

// lobby draws a box with the message and the high scores over the board.
func (r *render) lobby(l *lobbyData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.execute()

	lines := []string{"", center("Blockdrop"), ""}
	if l.Message != "" {
		lines = append(lines, center(l.Message), "")
	}
	if len(l.Scores) > 0 {
		lines = append(lines, center("High Scores"))
		for i, e := range l.Scores {
			lines = append(lines, fmt.Sprintf("%2d %-10.10s %6d", i+1, e.Name, e.Score))
		}
		lines = append(lines, "")
	}
	lines = append(lines, center("(p)lay   (q)uit"), "")

	const top = 4
	border := "+" + strings.Repeat("-", boardWidth) + "+"
	fmt.Fprintf(r.writer, "\033[%d;1H%s", top, border)
	for i, line := range lines {
		fmt.Fprintf(r.writer, "\033[%d;1H|%-*s|", top+1+i, boardWidth, line)
	}
	fmt.Fprintf(r.writer, "\033[%d;1H%s", top+1+len(lines), border)
}

func (r *render) local(t *tetris.Tetris) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Local = t
	r.execute()
}

func (r *render) execute() {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"localStack": localStack,
		"panel":      panel,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(s tetris.Shape) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[s])
}

func center(s string) string {
	pad := max(0, boardWidth-len(s))
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// localStack renders the stack with the ghost and the falling tetromino on top.
func localStack(t *templateData) [tetris.Height][tetris.Width]string {
	rendered := [tetris.Height][tetris.Width]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = empty
		}
	}
	if t == nil || t.Local == nil {
		return rendered
	}

	for y := range tetris.Height {
		for x := range tetris.Width {
			if v := t.Local.Stack.Cell(x, y); v != "" {
				rendered[y][x] = cell(v)
			}
		}
	}

	tt := t.Local.Tetromino
	if tt == nil {
		return rendered
	}
	if !t.NoGhost {
		g := *tt
		g.Y = t.Local.GhostY()
		paint(&rendered, g.Cells(), ghost)
	}
	paint(&rendered, tt.Cells(), cell(tt.Shape))
	return rendered
}

// paint sets the cells that are inside the board, the ones above the top are hidden.
func paint(rendered *[tetris.Height][tetris.Width]string, cells [4]tetris.Offset, s string) {
	for _, c := range cells {
		if c.DY >= 0 && c.DY < tetris.Height && c.DX >= 0 && c.DX < tetris.Width {
			rendered[c.DY][c.DX] = s
		}
	}
}

// nextPiece renders the next shape in its spawn orientation on a 2x4 grid.
func nextPiece(t *templateData) []string {
	rows := [2][4]string{}
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = empty
		}
	}
	if t != nil && t.Local != nil && t.Local.Next != "" {
		cells := tetris.Cells(t.Local.Next, 0)
		minY := cells[0].DY
		for _, c := range cells {
			minY = min(minY, c.DY)
		}
		for _, c := range cells {
			rows[c.DY-minY][c.DX+1] = cell(t.Local.Next)
		}
	}
	return []string{strings.Join(rows[0][:], ""), strings.Join(rows[1][:], "")}
}

// panel returns the text shown next to every row of the board.
func panel(t *templateData) [tetris.Height]string {
	var p [tetris.Height]string
	p[0] = "\033[1mBlockdrop\033[0m"
	if t == nil {
		return p
	}
	p[2] = "Player: " + t.Name
	if t.Local == nil {
		return p
	}
	next := nextPiece(t)
	p[4] = "Next:"
	p[5] = "  " + next[0]
	p[6] = "  " + next[1]
	p[8] = fmt.Sprintf("Score: %d", t.Local.Score.Points)
	p[9] = fmt.Sprintf("Lines: %d", t.Local.Score.Lines)
	p[10] = fmt.Sprintf("Level: %d", t.Local.Score.Level)
	switch {
	case t.Local.GameOver:
		p[12] = "\033[1mGAME OVER\033[0m"
	case t.Local.Paused:
		p[12] = "\033[1mPAUSED\033[0m"
	}
	p[14] = "←→ move   ↑ rotate"
	p[15] = "↓ down    ␣ drop"
	p[16] = "p pause   r restart"
	p[17] = "q quit"
	return p
}
