// Package terminal draws matches in a terminal and reads both players'
// keys from it. A Terminal owns one screen for its whole lifetime: Open
// initializes the display backend and Close restores the terminal.
package terminal

import (
	"context"
	"sync"

	"github.com/battlesnakeio/duel/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Display backends.
const (
	DisplayTermbox = "termbox"
	DisplayTcell   = "tcell"
)

// ErrUnknownDisplay is returned by Open for unsupported backends.
var ErrUnknownDisplay = errors.New("terminal: unknown display")

// Canvas is a grid of character cells.
type Canvas interface {
	Size() (width, height int)
	Clear() error
	// SetCell draws ch at x, y. Cells off the canvas are ignored. An empty
	// color is the terminal default.
	SetCell(x, y int, ch rune, fg, bg rules.Color)
	Flush() error
}

// Screen is a canvas that also reports input.
type Screen interface {
	Canvas
	// PollEvent blocks for the next event. After Interrupt it returns
	// EventClosed.
	PollEvent() Event
	Interrupt()
	Close() error
}

// Terminal renders frames on a screen and collects key presses from it. It
// satisfies worker.Renderer and worker.InputSource.
type Terminal struct {
	screen   Screen
	keyboard *Keyboard
	renderer *Renderer

	dismiss chan struct{}
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Open initializes the named display and starts reading keys from it.
func Open(display string, keys KeyMap) (*Terminal, error) {
	kb, err := NewKeyboard(keys)
	if err != nil {
		return nil, err
	}
	var screen Screen
	switch display {
	case DisplayTermbox, "":
		screen, err = NewTermboxScreen()
	case DisplayTcell:
		screen, err = NewTcellScreen(nil)
	default:
		return nil, errors.Wrapf(ErrUnknownDisplay, "%q", display)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s display", display)
	}
	return newTerminal(screen, kb), nil
}

// New wraps an already initialized screen.
func New(screen Screen, keys KeyMap) (*Terminal, error) {
	kb, err := NewKeyboard(keys)
	if err != nil {
		return nil, err
	}
	return newTerminal(screen, kb), nil
}

func newTerminal(screen Screen, kb *Keyboard) *Terminal {
	t := &Terminal{
		screen:   screen,
		keyboard: kb,
		renderer: NewRenderer(screen),
		dismiss:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go t.pump()
	return t
}

// pump feeds screen events to the keyboard until the screen closes.
func (t *Terminal) pump() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		switch ev.Type {
		case EventClosed:
			return
		case EventKey:
			t.keyboard.Feed(ev)
			switch ev.Key {
			case KeyEnter, KeyEsc, KeyCtrlC:
				select {
				case t.dismiss <- struct{}{}:
				default:
				}
			}
		}
	}
}

// Poll returns the buttons pressed since the previous poll.
func (t *Terminal) Poll() rules.KeyState {
	return t.keyboard.Poll()
}

// Render draws one frame.
func (t *Terminal) Render(frame *rules.Frame) error {
	return t.renderer.Render(frame)
}

// RenderResult draws the winner screen.
func (t *Terminal) RenderResult(result rules.MatchResult) error {
	return t.renderer.RenderResult(result)
}

// WaitForDismiss blocks until enter or esc is pressed after the call, the
// screen closes or ctx is done.
func (t *Terminal) WaitForDismiss(ctx context.Context) error {
	select {
	case <-t.dismiss:
	default:
	}
	select {
	case <-t.dismiss:
		return nil
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops reading input and restores the terminal. It is safe to call
// more than once.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		t.screen.Interrupt()
		<-t.done
		t.closeErr = t.screen.Close()
		log.Debug("terminal closed")
	})
	return t.closeErr
}
