package rules

import "github.com/pkg/errors"

// ErrGridMisaligned is returned when the grid dimensions are not positive
// multiples of the block size.
var ErrGridMisaligned = errors.New("rules: grid dimensions must be positive multiples of the block size")

// Cell is a position on the grid in pixel units. A cell is always a multiple
// of the block size once it has been wrapped by its grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Equal checks if 2 cells are the same x,y coordinate
func (c Cell) Equal(other Cell) bool {
	return c.X == other.X && c.Y == other.Y
}

// Grid is the toroidal board the snakes move on. Leaving one edge re-enters
// the opposite edge at the same orthogonal coordinate.
type Grid struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	BlockSize int `json:"blockSize"`
}

// NewGrid validates the dimensions and returns a grid.
func NewGrid(width, height, blockSize int) (Grid, error) {
	if blockSize <= 0 || width <= 0 || height <= 0 {
		return Grid{}, errors.Wrapf(ErrGridMisaligned, "width=%d height=%d block=%d", width, height, blockSize)
	}
	if width%blockSize != 0 || height%blockSize != 0 {
		return Grid{}, errors.Wrapf(ErrGridMisaligned, "width=%d height=%d block=%d", width, height, blockSize)
	}
	return Grid{Width: width, Height: height, BlockSize: blockSize}, nil
}

// Columns is the number of cells across.
func (g Grid) Columns() int { return g.Width / g.BlockSize }

// Rows is the number of cells down.
func (g Grid) Rows() int { return g.Height / g.BlockSize }

// CellAt converts a column/row index into a cell, wrapping out of range
// indexes.
func (g Grid) CellAt(col, row int) Cell {
	return g.Wrap(Cell{X: col * g.BlockSize, Y: row * g.BlockSize})
}

// Index converts a cell back into its column/row index.
func (g Grid) Index(c Cell) (col, row int) {
	return c.X / g.BlockSize, c.Y / g.BlockSize
}

// Wrap maps any cell onto the board.
func (g Grid) Wrap(c Cell) Cell {
	return Cell{X: wrap(c.X, g.Width), Y: wrap(c.Y, g.Height)}
}

// Step returns the cell one block away from c in direction d, wrapped.
func (g Grid) Step(c Cell, d Direction) Cell {
	dx, dy := d.Vector(g.BlockSize)
	return g.Wrap(Cell{X: c.X + dx, Y: c.Y + dy})
}

// RandomCell picks a cell uniformly, column first then row.
func (g Grid) RandomCell(r Rand) Cell {
	col := r.Intn(g.Columns())
	row := r.Intn(g.Rows())
	return g.CellAt(col, row)
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
