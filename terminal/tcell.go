package terminal

import (
	"github.com/battlesnakeio/duel/rules"
	"github.com/gdamore/tcell/v2"
)

type tcellScreen struct {
	screen tcell.Screen
}

// NewTcellScreen initializes s, or the real terminal when s is nil.
func NewTcellScreen(s tcell.Screen) (Screen, error) {
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	return &tcellScreen{screen: s}, nil
}

func (t *tcellScreen) Size() (int, int) { return t.screen.Size() }

func (t *tcellScreen) Clear() error {
	t.screen.Clear()
	return nil
}

func (t *tcellScreen) SetCell(x, y int, ch rune, fg, bg rules.Color) {
	style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
	t.screen.SetContent(x, y, ch, nil, style)
}

func (t *tcellScreen) Flush() error {
	t.screen.Show()
	return nil
}

func (t *tcellScreen) PollEvent() Event {
	return fromTcell(t.screen.PollEvent())
}

func (t *tcellScreen) Interrupt() {
	// Fails only when the event queue is full, in which case the poller is
	// already awake.
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (t *tcellScreen) Close() error {
	t.screen.Fini()
	return nil
}

func tcellColor(c rules.Color) tcell.Color {
	if c == "" {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(c.RGB())
}

func fromTcell(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case nil:
		return Event{Type: EventClosed}
	case *tcell.EventInterrupt:
		return Event{Type: EventClosed}
	case *tcell.EventResize:
		return Event{Type: EventResize}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyRune:
			return Event{Type: EventKey, Key: KeyRune, Rune: ev.Rune()}
		case tcell.KeyUp:
			return Event{Type: EventKey, Key: KeyUp}
		case tcell.KeyDown:
			return Event{Type: EventKey, Key: KeyDown}
		case tcell.KeyLeft:
			return Event{Type: EventKey, Key: KeyLeft}
		case tcell.KeyRight:
			return Event{Type: EventKey, Key: KeyRight}
		case tcell.KeyEnter:
			return Event{Type: EventKey, Key: KeyEnter}
		case tcell.KeyEscape:
			return Event{Type: EventKey, Key: KeyEsc}
		case tcell.KeyCtrlC:
			return Event{Type: EventKey, Key: KeyCtrlC}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return Event{Type: EventKey, Key: KeyBackspace}
		}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
