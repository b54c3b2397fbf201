package worker

import (
	"context"
	"sync"

	"github.com/battlesnakeio/duel/rules"
	"github.com/battlesnakeio/duel/stats"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// zeroRand always draws zero: fruit spawn as normal fruit in the corner.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

var testConfig = rules.MatchConfig{
	Grid:       rules.Grid{Width: 100, Height: 100, BlockSize: 10},
	FruitCount: 1,
	Clock:      rules.NewManualClock(rules.SystemClock{}.Now()),
	Rand:       zeroRand{},
}

func cells(xy ...int) []rules.Cell {
	out := make([]rules.Cell, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, rules.Cell{X: xy[i], Y: xy[i+1]})
	}
	return out
}

// collisionMatch sets the snakes on a collision course along row 50. Snake
// one runs into snake two's body on the third tick.
func collisionMatch() (*rules.Match, error) {
	m, err := rules.NewMatch(testConfig, "p1", "p2")
	if err != nil {
		return nil, err
	}
	m.Snakes[0].Body = cells(20, 50, 10, 50, 0, 50)
	m.Snakes[0].Direction = rules.DirectionRight
	m.Snakes[1].Body = cells(70, 50, 80, 50, 90, 50)
	m.Snakes[1].Direction = rules.DirectionLeft
	return m, nil
}

func testRunner() *Runner {
	return &Runner{
		Config:   testConfig,
		TickRate: rate.Inf,
		Names:    StaticNames{Player1: "p1", Player2: "p2"},
		Renderer: &recordingRenderer{},
		Stats:    &recordingSink{},
	}
}

type recordingRenderer struct {
	frames  []*rules.Frame
	results []rules.MatchResult
	err     error
}

func (r *recordingRenderer) Render(frame *rules.Frame) error {
	r.frames = append(r.frames, frame)
	return r.err
}

func (r *recordingRenderer) RenderResult(result rules.MatchResult) error {
	r.results = append(r.results, result)
	return r.err
}

type recordedResult struct {
	Name    string
	Outcome stats.Outcome
	Score   int
}

type recordingSink struct {
	lock  sync.Mutex
	calls []recordedResult
	err   error
}

func (s *recordingSink) RecordResult(ctx context.Context, name string, outcome stats.Outcome, score int) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.calls = append(s.calls, recordedResult{name, outcome, score})
	return s.err
}

// scriptedInput returns one key state per poll and nothing once exhausted.
type scriptedInput struct {
	polls []rules.KeyState
}

func (in *scriptedInput) Poll() rules.KeyState {
	if len(in.polls) == 0 {
		return rules.KeyState{}
	}
	k := in.polls[0]
	in.polls = in.polls[1:]
	return k
}

func press(buttons ...rules.Button) rules.KeyState {
	var k rules.KeyState
	for _, b := range buttons {
		k.Press(b)
	}
	return k
}

type failingNames struct{}

func (failingNames) PlayerNames(context.Context) (string, string, error) {
	return "", "", errors.New("stdin closed")
}
