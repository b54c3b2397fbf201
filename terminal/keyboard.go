package terminal

import (
	"sync"

	"github.com/battlesnakeio/duel/rules"
	"github.com/pkg/errors"
)

// ErrInvalidKeyMap is returned for key maps that leave a button unbound or
// hold malformed bindings.
var ErrInvalidKeyMap = errors.New("terminal: invalid key map")

// KeyMap binds keys to buttons. Several keys may share a button.
type KeyMap map[Binding]rules.Button

// DefaultKeyMap steers player one with the arrows and player two with WASD.
// Esc, ctrl-c and q quit.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		{Key: KeyUp}:    rules.ButtonP1Up,
		{Key: KeyDown}:  rules.ButtonP1Down,
		{Key: KeyLeft}:  rules.ButtonP1Left,
		{Key: KeyRight}: rules.ButtonP1Right,
		{Key: KeyEsc}:   rules.ButtonQuit,
		{Key: KeyCtrlC}: rules.ButtonQuit,
	}
	for r, b := range map[rune]rules.Button{
		'w': rules.ButtonP2Up,
		's': rules.ButtonP2Down,
		'a': rules.ButtonP2Left,
		'd': rules.ButtonP2Right,
		'q': rules.ButtonQuit,
	} {
		km[Binding{Key: KeyRune, Rune: r}] = b
		km[Binding{Key: KeyRune, Rune: r - 'a' + 'A'}] = b
	}
	return km
}

// Validate checks that every button has a key and every key is well formed.
func (km KeyMap) Validate() error {
	var bound [rules.ButtonQuit + 1]bool
	for k, b := range km {
		if b > rules.ButtonQuit {
			return errors.Wrapf(ErrInvalidKeyMap, "%s bound to unknown button %d", k, b)
		}
		switch {
		case k.Key == KeyNone:
			return errors.Wrapf(ErrInvalidKeyMap, "empty key bound to %s", b)
		case k.Key == KeyRune && k.Rune == 0:
			return errors.Wrapf(ErrInvalidKeyMap, "rune key without a rune bound to %s", b)
		case k.Key != KeyRune && k.Rune != 0:
			return errors.Wrapf(ErrInvalidKeyMap, "%s carries a rune", k)
		}
		bound[b] = true
	}
	for b, ok := range bound {
		if !ok {
			return errors.Wrapf(ErrInvalidKeyMap, "%s is unbound", rules.Button(b))
		}
	}
	return nil
}

// directionButtons lists each player's buttons in the order a snake applies
// them.
var directionButtons = [2][4]rules.Button{
	{rules.ButtonP1Up, rules.ButtonP1Down, rules.ButtonP1Left, rules.ButtonP1Right},
	{rules.ButtonP2Up, rules.ButtonP2Down, rules.ButtonP2Left, rules.ButtonP2Right},
}

// Keyboard turns key events into the per tick key state. Terminals report
// presses, not held keys, so a button counts as held for the next poll after
// its key is pressed. A press that lost to a higher priority press of the
// same player is held for one more poll. Quit stays held once pressed.
type Keyboard struct {
	keys KeyMap

	lock     sync.Mutex
	state    rules.KeyState
	deferred rules.KeyState
	quit     bool
}

// NewKeyboard validates km and returns a keyboard using it.
func NewKeyboard(km KeyMap) (*Keyboard, error) {
	if err := km.Validate(); err != nil {
		return nil, err
	}
	keys := make(KeyMap, len(km))
	for k, b := range km {
		keys[k] = b
	}
	return &Keyboard{keys: keys}, nil
}

// Feed records a key event. It reports whether the key is bound.
func (kb *Keyboard) Feed(ev Event) bool {
	if ev.Type != EventKey {
		return false
	}
	b, ok := kb.keys[ev.binding()]
	if !ok {
		return false
	}
	kb.lock.Lock()
	defer kb.lock.Unlock()
	if b == rules.ButtonQuit {
		kb.quit = true
	}
	kb.state.Press(b)
	return true
}

// Quit marks quit as held, as if a quit key had been pressed.
func (kb *Keyboard) Quit() {
	kb.lock.Lock()
	defer kb.lock.Unlock()
	kb.quit = true
	kb.state.Press(rules.ButtonQuit)
}

// Poll returns the buttons pressed since the last poll, plus the presses
// deferred by the previous poll.
func (kb *Keyboard) Poll() rules.KeyState {
	kb.lock.Lock()
	defer kb.lock.Unlock()
	out := kb.state
	var next rules.KeyState
	for _, group := range directionButtons {
		applied := -1
		for i, b := range group {
			if kb.deferred.Pressed(b) {
				out.Press(b)
			}
			if applied < 0 && out.Pressed(b) {
				applied = i
			}
		}
		// Deferred presses only get the one extra poll.
		for i, b := range group {
			if i != applied && kb.state.Pressed(b) {
				next.Press(b)
			}
		}
	}
	kb.state = rules.KeyState{}
	kb.deferred = next
	if kb.quit {
		kb.state.Press(rules.ButtonQuit)
	}
	return out
}
