package life

import (
	"fmt"
	"strings"

	"bitlife/internal/core"
)

// Pattern is a small fixture of live cells, row-major, top-left anchored.
type Pattern struct {
	Name  string
	W, H  int
	cells [][2]int // (row, col) offsets of live cells
}

// Cells returns the (row, col) offsets of the live cells.
func (p Pattern) Cells() [][2]int { return p.cells }

// ParsePattern reads plaintext notation: 'O' or '*' is alive, '.' is dead and
// lines starting with '!' are comments.
func ParsePattern(name, text string) (Pattern, error) {
	p := Pattern{Name: name}
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.HasPrefix(line, "!") {
			continue
		}
		if line == "" && row == 0 {
			continue
		}
		for col, ch := range line {
			switch ch {
			case 'O', '*':
				p.cells = append(p.cells, [2]int{row, col})
			case '.':
			default:
				return Pattern{}, fmt.Errorf("pattern %s: unexpected %q at line %d col %d", name, ch, row+1, col+1)
			}
			if col+1 > p.W {
				p.W = col + 1
			}
		}
		row++
	}
	if len(p.cells) == 0 {
		return Pattern{}, fmt.Errorf("pattern %s: no live cells", name)
	}
	// trailing dead rows do not count towards the height
	last := 0
	for _, c := range p.cells {
		last = max(last, c[0])
	}
	p.H = last + 1
	return p, nil
}

func mustParse(name, text string) Pattern {
	p, err := ParsePattern(name, text)
	if err != nil {
		panic(err)
	}
	return p
}

var (
	// Block is the 2x2 still life.
	Block = mustParse("block", "OO\nOO")
	// Blinker is the period-2 oscillator, horizontal phase.
	Blinker = mustParse("blinker", "OOO")
	// Glider travels one cell down and right every four generations.
	Glider = mustParse("glider", ".O.\n..O\nOOO")
	// LWSS is the lightweight spaceship.
	LWSS = mustParse("lwss", ".O..O\nO....\nO...O\nOOOO.")
	// RPentomino is the classic methuselah.
	RPentomino = mustParse("r-pentomino", ".OO\nOO.\n.O.")
	// GosperGun emits a glider every 30 generations.
	GosperGun = mustParse("gosper-gun", `
........................O...........
......................O.O...........
............OO......OO............OO
...........O...O....OO............OO
OO........O.....O...OO..............
OO........O...O.OO....O.O...........
..........O.....O.......O...........
...........O...O....................
............OO......................`)
)

// Patterns lists the built-in fixtures.
func Patterns() []Pattern {
	return []Pattern{Block, Blinker, Glider, LWSS, RPentomino, GosperGun}
}

// PatternByName finds a built-in fixture.
func PatternByName(name string) (Pattern, bool) {
	for _, p := range Patterns() {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

// Stamp writes p's live cells into g with its top-left corner at (row, col).
// Every live cell must land on an interior cell.
func Stamp(g *core.BitGrid, p Pattern, row, col int) error {
	for _, c := range p.cells {
		r, x := row+c[0], col+c[1]
		if !g.Interior(r, x) {
			s := g.Size()
			return fmt.Errorf("stamp %s at (%d,%d): %w", p.Name, row, col, &core.BoundsError{Row: r, Col: x, Rows: s.H, Cols: s.W})
		}
	}
	for _, c := range p.cells {
		g.Set(row+c[0], col+c[1], true)
	}
	return nil
}
