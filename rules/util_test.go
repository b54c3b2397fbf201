package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedRand returns the scripted values in order, each reduced modulo n,
// then zeros once exhausted.
type scriptedRand struct {
	values []int
	next   int
}

func newScriptedRand(values ...int) *scriptedRand {
	return &scriptedRand{values: values}
}

func (r *scriptedRand) Intn(n int) int {
	if r.next >= len(r.values) {
		return 0
	}
	v := r.values[r.next] % n
	r.next++
	return v
}

var epoch = time.Date(2018, 6, 8, 2, 5, 42, 0, time.UTC)

// 10x10 cells of 10 pixels.
func testGrid(t *testing.T) Grid {
	g, err := NewGrid(100, 100, 10)
	require.NoError(t, err)
	return g
}

func testSnake(t *testing.T, head Cell, clock Clock) *Snake {
	return NewSnake("test", ColorGreen, Player1Controls, head, testGrid(t), clock)
}

func cells(xy ...int) []Cell {
	out := make([]Cell, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Cell{X: xy[i], Y: xy[i+1]})
	}
	return out
}
