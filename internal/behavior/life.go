package behavior

import (
	"time"

	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/palette"
)

// Control row buttons used by Life
const (
	LifeStartKey uint8 = 104
	LifeQuitKey  uint8 = 105
)

var (
	lifeAlive   = palette.New(palette.Green, palette.High)
	lifeIdle    = palette.New(palette.Green, palette.Low)
	lifeRunning = palette.New(palette.Green, palette.High)
	lifeQuit    = palette.New(palette.Red, palette.Low)
)

// Life is Conway's Game of Life on a bounded board. Cells beyond the edge
// count as dead. Pads toggle cells; the start button sets the simulation
// running and there is no way back.
type Life struct {
	// AllowToggleWhileRunning lets pads toggle cells after the simulation
	// has started. When false such presses are reported unbound.
	AllowToggleWhileRunning bool

	width, height int
	running       bool
	board, next   [][]bool // [x][y]
}

// NewLife creates an all dead board. Toggling while running is allowed.
func NewLife(width, height int) *Life {
	return &Life{
		AllowToggleWhileRunning: true,
		width:                   width,
		height:                  height,
		board:                   newBoard(width, height),
		next:                    newBoard(width, height),
	}
}

func newBoard(width, height int) [][]bool {
	b := make([][]bool, width)
	for x := range b {
		b[x] = make([]bool, height)
	}
	return b
}

// Running reports whether the simulation has been started
func (l *Life) Running() bool {
	return l.running
}

// Start sets the simulation running
func (l *Life) Start() {
	l.running = true
}

// Alive reports whether the cell at c is alive
func (l *Life) Alive(c grid.Coord) bool {
	if !c.In(l.width, l.height) {
		return false
	}
	return l.board[c.X][c.Y]
}

// SetAlive sets the state of the cell at c
func (l *Life) SetAlive(c grid.Coord, alive bool) {
	if !c.In(l.width, l.height) {
		return
	}
	l.board[c.X][c.Y] = alive
}

// Toggle flips the cell at c
func (l *Life) Toggle(c grid.Coord) {
	l.SetAlive(c, !l.Alive(c))
}

func (l *Life) Control(key uint8) Outcome {
	switch key {
	case LifeStartKey:
		l.Start()
		return Handled
	case LifeQuitKey:
		return Quit
	}
	return Unbound
}

func (l *Life) Press(c grid.Coord) Outcome {
	if !c.In(l.width, l.height) {
		return Unbound
	}
	if l.running && !l.AllowToggleWhileRunning {
		return Unbound
	}
	l.Toggle(c)
	return Handled
}

// Tick advances one generation when running. Pacing is up to the caller.
func (l *Life) Tick(time.Duration) bool {
	if !l.running {
		return false
	}
	l.Step()
	return true
}

// Step computes the next generation regardless of the running flag
func (l *Life) Step() {
	for x := 0; x < l.width; x++ {
		for y := 0; y < l.height; y++ {
			n := l.neighbors(x, y)
			alive := l.board[x][y]
			l.next[x][y] = n == 3 || (alive && n == 2)
		}
	}
	l.board, l.next = l.next, l.board
}

// neighbors counts live cells in the Moore neighborhood of (x, y)
func (l *Life) neighbors(x, y int) int {
	count := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= l.width || ny >= l.height {
				continue
			}
			if l.board[nx][ny] {
				count++
			}
		}
	}
	return count
}

func (l *Life) Render(f *Frame, _ time.Duration) {
	f.Reset()
	for x := 0; x < l.width; x++ {
		for y := 0; y < l.height; y++ {
			if l.board[x][y] {
				f.Set(grid.Coord{X: x, Y: y}, lifeAlive)
			}
		}
	}
	if l.running {
		f.Controls[LifeStartKey] = lifeRunning
	} else {
		f.Controls[LifeStartKey] = lifeIdle
	}
	f.Controls[LifeQuitKey] = lifeQuit
}
