package rules

import "github.com/pkg/errors"

// Direction is one of the four headings a snake can have.
type Direction uint8

const (
	// DirectionRight is the heading every snake starts with.
	DirectionRight Direction = iota
	DirectionDown
	DirectionLeft
	DirectionUp
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "unknown"
}

// Vector returns the offset of one step in this direction, scaled by the
// block size. Up decreases Y.
func (d Direction) Vector(blockSize int) (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -blockSize
	case DirectionDown:
		return 0, blockSize
	case DirectionLeft:
		return -blockSize, 0
	case DirectionRight:
		return blockSize, 0
	}
	panic("rules: unknown direction")
}

// Opposite returns the exact negation of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	panic("rules: unknown direction")
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(data []byte) error {
	for _, candidate := range []Direction{DirectionRight, DirectionDown, DirectionLeft, DirectionUp} {
		if candidate.String() == string(data) {
			*d = candidate
			return nil
		}
	}
	return errors.Errorf("rules: unknown direction %q", data)
}
