package rules

import "github.com/pkg/errors"

// ErrInvalidControls is returned when a control set does not map four
// distinct directional buttons.
var ErrInvalidControls = errors.New("rules: invalid controls")

// Button is a logical control key. Physical keys are mapped onto buttons by
// the input backend.
type Button uint8

// The logical buttons: four directions per player plus quit.
const (
	ButtonP1Up Button = iota
	ButtonP1Down
	ButtonP1Left
	ButtonP1Right
	ButtonP2Up
	ButtonP2Down
	ButtonP2Left
	ButtonP2Right
	ButtonQuit

	buttonCount
)

var buttonNames = [buttonCount]string{
	"p1-up", "p1-down", "p1-left", "p1-right",
	"p2-up", "p2-down", "p2-left", "p2-right",
	"quit",
}

func (b Button) String() string {
	if b >= buttonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// KeyState is the instantaneous pressed state of every button for one tick.
type KeyState [buttonCount]bool

// Press marks b as held.
func (k *KeyState) Press(b Button) {
	if b < buttonCount {
		k[b] = true
	}
}

// Pressed reports whether b is held.
func (k KeyState) Pressed(b Button) bool {
	return b < buttonCount && k[b]
}

// Controls binds the four directions of one snake to buttons.
type Controls struct {
	Up    Button
	Down  Button
	Left  Button
	Right Button
}

// NewControls validates that the four buttons are distinct directional
// buttons.
func NewControls(up, down, left, right Button) (Controls, error) {
	c := Controls{Up: up, Down: down, Left: left, Right: right}
	seen := map[Button]bool{}
	for _, b := range []Button{up, down, left, right} {
		if b >= ButtonQuit {
			return Controls{}, errors.Wrapf(ErrInvalidControls, "%s is not a direction button", b)
		}
		if seen[b] {
			return Controls{}, errors.Wrapf(ErrInvalidControls, "%s bound twice", b)
		}
		seen[b] = true
	}
	return c, nil
}

// Default bindings for each player slot.
var (
	Player1Controls = Controls{Up: ButtonP1Up, Down: ButtonP1Down, Left: ButtonP1Left, Right: ButtonP1Right}
	Player2Controls = Controls{Up: ButtonP2Up, Down: ButtonP2Down, Left: ButtonP2Left, Right: ButtonP2Right}
)
