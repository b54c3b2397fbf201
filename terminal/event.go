package terminal

import "fmt"

// Key identifies a key independent of the display backend.
type Key uint8

// Keys the game understands. Printable keys are KeyRune with the rune set.
const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyCtrlC
	KeyBackspace
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyCtrlC:     "ctrl-c",
	KeyBackspace: "backspace",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// EventType is the kind of event a screen reports.
type EventType uint8

// Event types.
const (
	EventKey EventType = iota
	EventResize
	// EventClosed is reported once the screen is interrupted or fails.
	EventClosed
)

// Event is a backend independent input event.
type Event struct {
	Type EventType
	Key  Key
	Rune rune
}

// Binding is a single key, as matched against key events.
type Binding struct {
	Key  Key
	Rune rune
}

func (b Binding) String() string {
	if b.Key == KeyRune {
		return fmt.Sprintf("%q", b.Rune)
	}
	return b.Key.String()
}

// binding returns the key of a key event.
func (e Event) binding() Binding {
	if e.Key != KeyRune {
		return Binding{Key: e.Key}
	}
	return Binding{Key: KeyRune, Rune: e.Rune}
}
