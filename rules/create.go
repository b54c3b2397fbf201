package rules

import (
	"strings"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultFruitCount is the number of fruits kept on the board.
const DefaultFruitCount = 5

var (
	// ErrEmptyName is returned when a player name is blank.
	ErrEmptyName = errors.New("rules: player name is empty")
	// ErrInvalidFruitCount is returned when the fruit pool is not positive.
	ErrInvalidFruitCount = errors.New("rules: fruit count must be positive")
	// ErrGridTooSmall is returned when the starting snakes would overlap
	// themselves or each other.
	ErrGridTooSmall = errors.New("rules: grid too small for two snakes")
	// ErrMatchFinished is returned when ticking a match that has ended.
	ErrMatchFinished = errors.New("rules: match is finished")
)

// MatchConfig holds the setup of a match.
type MatchConfig struct {
	Grid       Grid
	FruitCount int
	// Controls per player slot. The zero value selects Player1Controls and
	// Player2Controls.
	Controls [2]Controls
	Clock    Clock
	Rand     Rand
}

// Match is one game between two snakes. It is not safe for concurrent use;
// the goroutine ticking it owns every snake and fruit.
type Match struct {
	ID     string
	Status MatchStatus
	Turn   int64
	Grid   Grid
	Snakes [2]*Snake
	Fruits []Fruit

	eaten  []Consumption
	result *MatchResult
	rand   Rand
}

// NewMatch creates a match between two named players. Snake one starts a
// fifth of the way into the board and snake two four fifths in, both heading
// right.
func NewMatch(cfg MatchConfig, player1, player2 string) (*Match, error) {
	if strings.TrimSpace(player1) == "" || strings.TrimSpace(player2) == "" {
		return nil, ErrEmptyName
	}
	grid, err := NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.BlockSize)
	if err != nil {
		return nil, err
	}
	if err := CheckStartPositions(grid); err != nil {
		return nil, err
	}
	if cfg.FruitCount <= 0 {
		return nil, errors.Wrapf(ErrInvalidFruitCount, "got %d", cfg.FruitCount)
	}
	controls, err := matchControls(cfg.Controls)
	if err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Rand == nil {
		cfg.Rand = NewRand()
	}

	starts := startCells(grid)
	m := &Match{
		ID:     uuid.NewV4().String(),
		Status: MatchStatusPlaying,
		Grid:   grid,
		rand:   cfg.Rand,
	}
	for i, name := range []string{player1, player2} {
		m.Snakes[i] = NewSnake(name, PlayerColor(i), controls[i], starts[i], grid, cfg.Clock)
	}
	m.Fruits = make([]Fruit, 0, cfg.FruitCount)
	for i := 0; i < cfg.FruitCount; i++ {
		m.Fruits = append(m.Fruits, SpawnFruit(grid, cfg.Rand))
	}

	log.WithFields(log.Fields{
		"MatchID": m.ID,
		"Player1": player1,
		"Player2": player2,
		"Columns": grid.Columns(),
		"Rows":    grid.Rows(),
		"Fruits":  cfg.FruitCount,
	}).Info("match created")
	return m, nil
}

// startCells places snake one a fifth of the way into the board and snake
// two four fifths in.
func startCells(grid Grid) [2]Cell {
	cols, rows := grid.Columns(), grid.Rows()
	return [2]Cell{
		grid.CellAt(cols/5, rows/5),
		grid.CellAt(cols*4/5, rows*4/5),
	}
}

// CheckStartPositions returns ErrGridTooSmall unless both starting bodies fit
// on grid without sharing a cell.
func CheckStartPositions(grid Grid) error {
	seen := map[Cell]bool{}
	for i, head := range startCells(grid) {
		for _, c := range startBody(grid, head) {
			if seen[c] {
				return errors.Wrapf(ErrGridTooSmall, "%dx%d cells, snake %d overlaps at (%d, %d)",
					grid.Columns(), grid.Rows(), i+1, c.X, c.Y)
			}
			seen[c] = true
		}
	}
	return nil
}

func matchControls(cfg [2]Controls) ([2]Controls, error) {
	if cfg == ([2]Controls{}) {
		return [2]Controls{Player1Controls, Player2Controls}, nil
	}
	var out [2]Controls
	for i, c := range cfg {
		valid, err := NewControls(c.Up, c.Down, c.Left, c.Right)
		if err != nil {
			return out, errors.Wrapf(err, "player %d", i+1)
		}
		out[i] = valid
	}
	return out, nil
}

// Result returns the match result once the match has finished.
func (m *Match) Result() (MatchResult, bool) {
	if m.result == nil {
		return MatchResult{}, false
	}
	return *m.result, true
}

// Frame snapshots the match for rendering.
func (m *Match) Frame() *Frame {
	f := &Frame{
		MatchID: m.ID,
		Turn:    m.Turn,
		Status:  m.Status,
		Grid:    m.Grid,
		Snakes:  make([]SnakeView, 0, len(m.Snakes)),
		Fruits:  make([]Fruit, len(m.Fruits)),
	}
	for _, s := range m.Snakes {
		f.Snakes = append(f.Snakes, s.View())
	}
	copy(f.Fruits, m.Fruits)
	if len(m.eaten) > 0 {
		f.Eaten = make([]Consumption, len(m.eaten))
		copy(f.Eaten, m.eaten)
	}
	if m.result != nil {
		r := *m.result
		f.Result = &r
	}
	return f
}
