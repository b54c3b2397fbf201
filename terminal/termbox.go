package terminal

import (
	"github.com/battlesnakeio/duel/rules"
	termbox "github.com/nsf/termbox-go"
)

type termboxScreen struct{}

// NewTermboxScreen initializes termbox. Only one termbox screen may be open
// at a time.
func NewTermboxScreen() (Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	return termboxScreen{}, nil
}

func (termboxScreen) Size() (int, int) { return termbox.Size() }

func (termboxScreen) Clear() error {
	return termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (termboxScreen) SetCell(x, y int, ch rune, fg, bg rules.Color) {
	termbox.SetCell(x, y, ch, termboxColor(fg), termboxColor(bg))
}

func (termboxScreen) Flush() error { return termbox.Flush() }

func (termboxScreen) PollEvent() Event { return fromTermbox(termbox.PollEvent()) }

func (termboxScreen) Interrupt() { termbox.Interrupt() }

func (termboxScreen) Close() error {
	termbox.Close()
	return nil
}

// termboxColor maps c onto the eight ANSI colors by thresholding each
// channel.
func termboxColor(c rules.Color) termbox.Attribute {
	if c == "" {
		return termbox.ColorDefault
	}
	r, g, b := c.RGB()
	ansi := termbox.Attribute(0)
	if r > 0x7f {
		ansi |= 1
	}
	if g > 0x7f {
		ansi |= 2
	}
	if b > 0x7f {
		ansi |= 4
	}
	return termbox.ColorBlack + ansi
}

func fromTermbox(ev termbox.Event) Event {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Ch != 0 {
			return Event{Type: EventKey, Key: KeyRune, Rune: ev.Ch}
		}
		switch ev.Key {
		case termbox.KeyArrowUp:
			return Event{Type: EventKey, Key: KeyUp}
		case termbox.KeyArrowDown:
			return Event{Type: EventKey, Key: KeyDown}
		case termbox.KeyArrowLeft:
			return Event{Type: EventKey, Key: KeyLeft}
		case termbox.KeyArrowRight:
			return Event{Type: EventKey, Key: KeyRight}
		case termbox.KeyEnter:
			return Event{Type: EventKey, Key: KeyEnter}
		case termbox.KeyEsc:
			return Event{Type: EventKey, Key: KeyEsc}
		case termbox.KeyCtrlC:
			return Event{Type: EventKey, Key: KeyCtrlC}
		case termbox.KeyBackspace, termbox.KeyBackspace2:
			return Event{Type: EventKey, Key: KeyBackspace}
		case termbox.KeySpace:
			return Event{Type: EventKey, Key: KeyRune, Rune: ' '}
		}
		return Event{Type: EventKey, Key: KeyNone}
	case termbox.EventResize:
		return Event{Type: EventResize}
	case termbox.EventInterrupt, termbox.EventError:
		return Event{Type: EventClosed}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
