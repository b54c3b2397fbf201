package terminal

import (
	"sync"

	"github.com/battlesnakeio/duel/rules"
)

type cell struct {
	ch     rune
	fg, bg rules.Color
}

// fakeScreen records drawn cells and replays queued events.
type fakeScreen struct {
	width, height int

	lock    sync.Mutex
	cells   map[[2]int]cell
	flushes int
	closed  bool

	events chan Event
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{
		width:  w,
		height: h,
		cells:  map[[2]int]cell{},
		events: make(chan Event, 16),
	}
}

func (f *fakeScreen) Size() (int, int) { return f.width, f.height }

func (f *fakeScreen) Clear() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.cells = map[[2]int]cell{}
	return nil
}

func (f *fakeScreen) SetCell(x, y int, ch rune, fg, bg rules.Color) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.cells[[2]int{x, y}] = cell{ch, fg, bg}
}

func (f *fakeScreen) Flush() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.flushes++
	return nil
}

func (f *fakeScreen) PollEvent() Event { return <-f.events }

func (f *fakeScreen) Interrupt() { f.events <- Event{Type: EventClosed} }

func (f *fakeScreen) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.closed = true
	return nil
}

func (f *fakeScreen) at(x, y int) cell {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.cells[[2]int{x, y}]
}

// row returns the runes of line y, blanks as spaces.
func (f *fakeScreen) row(y int) string {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make([]rune, f.width)
	for x := range out {
		c, ok := f.cells[[2]int{x, y}]
		if !ok || c.ch == 0 {
			out[x] = ' '
			continue
		}
		out[x] = c.ch
	}
	return string(out)
}

func key(k Key) Event { return Event{Type: EventKey, Key: k} }

func char(r rune) Event { return Event{Type: EventKey, Key: KeyRune, Rune: r} }
