package rules

import "github.com/pkg/errors"

// ErrUnknownFruitType is returned when a fruit is built with a type outside
// the known set.
var ErrUnknownFruitType = errors.New("rules: unknown fruit type")

// FruitType tags what a fruit does to the snake that eats it.
type FruitType uint8

const (
	// FruitNormal grows the snake by 1 to 3 segments.
	FruitNormal FruitType = iota
	// FruitBoost doubles the snake's speed for BoostDuration.
	FruitBoost
	// FruitLengthen grows the snake by LengthenGrowth segments.
	FruitLengthen

	fruitTypeCount
)

const (
	// NormalGrowthMax is the largest growth a normal fruit grants.
	NormalGrowthMax = 3
	// LengthenGrowth is the growth a lengthen fruit grants.
	LengthenGrowth = 4
)

// FruitTypes lists every fruit type.
var FruitTypes = []FruitType{FruitNormal, FruitBoost, FruitLengthen}

// Valid reports whether t is a known type.
func (t FruitType) Valid() bool {
	return t < fruitTypeCount
}

func (t FruitType) String() string {
	switch t {
	case FruitNormal:
		return "normal"
	case FruitBoost:
		return "boost"
	case FruitLengthen:
		return "lengthen"
	}
	return "unknown"
}

// Color is the display color of the fruit type.
func (t FruitType) Color() Color {
	switch t {
	case FruitNormal:
		return ColorRed
	case FruitBoost:
		return ColorYellow
	case FruitLengthen:
		return ColorBlue
	}
	panic(ErrUnknownFruitType)
}

// ParseFruitType maps a name back to its type.
func ParseFruitType(name string) (FruitType, error) {
	for _, t := range FruitTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFruitType, "%q", name)
}

// MarshalText encodes the type by name.
func (t FruitType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrUnknownFruitType
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *FruitType) UnmarshalText(data []byte) error {
	parsed, err := ParseFruitType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Fruit is a collectible sitting on one cell.
type Fruit struct {
	Position Cell      `json:"position"`
	Type     FruitType `json:"type"`
}

// NewFruit builds a fruit, rejecting unknown types.
func NewFruit(t FruitType, pos Cell) (Fruit, error) {
	if !t.Valid() {
		return Fruit{}, errors.Wrapf(ErrUnknownFruitType, "type %d", t)
	}
	return Fruit{Position: pos, Type: t}, nil
}

// SpawnFruit creates a fruit of a random type at a random cell. The type is
// drawn before the position. Snake bodies are not avoided.
func SpawnFruit(grid Grid, r Rand) Fruit {
	t := FruitType(r.Intn(int(fruitTypeCount)))
	return Fruit{Position: grid.RandomCell(r), Type: t}
}

// Color is the display color of the fruit.
func (f Fruit) Color() Color { return f.Type.Color() }

// Effect applies the fruit to the snake that ate it.
func (f Fruit) Effect(s *Snake, r Rand) {
	switch f.Type {
	case FruitNormal:
		n := 1 + r.Intn(NormalGrowthMax)
		for i := 0; i < n; i++ {
			s.Grow()
		}
	case FruitBoost:
		s.ActivateSpeedBoost()
	case FruitLengthen:
		for i := 0; i < LengthenGrowth; i++ {
			s.Grow()
		}
	default:
		panic(ErrUnknownFruitType)
	}
}
