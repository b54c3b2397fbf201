package rules

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var commonConfig = MatchConfig{
	Grid:       Grid{Width: 1000, Height: 1000, BlockSize: 20},
	FruitCount: DefaultFruitCount,
}

func TestNewMatch(t *testing.T) {
	m, err := NewMatch(commonConfig, "alice", "bob")
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.Equal(t, MatchStatusPlaying, m.Status)
	require.Zero(t, m.Turn)
	require.Len(t, m.Fruits, DefaultFruitCount)

	s1, s2 := m.Snakes[0], m.Snakes[1]
	require.Equal(t, "alice", s1.Name)
	require.Equal(t, "bob", s2.Name)
	require.Equal(t, ColorGreen, s1.Color)
	require.Equal(t, ColorPurple, s2.Color)
	require.Equal(t, cells(200, 200, 180, 200, 160, 200), s1.Body)
	require.Equal(t, cells(800, 800, 780, 800, 760, 800), s2.Body)
	require.Equal(t, Player1Controls, s1.Controls)
	require.Equal(t, Player2Controls, s2.Controls)

	_, finished := m.Result()
	require.False(t, finished)
}

func TestNewMatch_UniqueIDs(t *testing.T) {
	a, err := NewMatch(commonConfig, "alice", "bob")
	require.NoError(t, err)
	b, err := NewMatch(commonConfig, "alice", "bob")
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestNewMatch_Errors(t *testing.T) {
	tests := []struct {
		Name     string
		Config   MatchConfig
		P1, P2   string
		Expected error
	}{
		{Name: "empty name", Config: commonConfig, P1: "", P2: "bob", Expected: ErrEmptyName},
		{Name: "blank name", Config: commonConfig, P1: "alice", P2: "  ", Expected: ErrEmptyName},
		{
			Name:     "misaligned grid",
			Config:   MatchConfig{Grid: Grid{Width: 1000, Height: 990, BlockSize: 20}, FruitCount: 5},
			P1:       "alice",
			P2:       "bob",
			Expected: ErrGridMisaligned,
		},
		{
			Name:     "snake wraps onto itself",
			Config:   MatchConfig{Grid: Grid{Width: 20, Height: 20, BlockSize: 10}, FruitCount: 1},
			P1:       "alice",
			P2:       "bob",
			Expected: ErrGridTooSmall,
		},
		{
			Name:     "snakes overlap",
			Config:   MatchConfig{Grid: Grid{Width: 50, Height: 10, BlockSize: 10}, FruitCount: 1},
			P1:       "alice",
			P2:       "bob",
			Expected: ErrGridTooSmall,
		},
		{
			Name:     "no fruit",
			Config:   MatchConfig{Grid: commonConfig.Grid},
			P1:       "alice",
			P2:       "bob",
			Expected: ErrInvalidFruitCount,
		},
		{
			Name: "shared controls",
			Config: MatchConfig{
				Grid:       commonConfig.Grid,
				FruitCount: 5,
				Controls:   [2]Controls{Player1Controls, Player1Controls},
			},
			P1:       "alice",
			P2:       "bob",
			Expected: nil,
		},
		{
			Name: "duplicate button",
			Config: MatchConfig{
				Grid:       commonConfig.Grid,
				FruitCount: 5,
				Controls:   [2]Controls{Player1Controls, {Up: ButtonP2Up, Down: ButtonP2Up, Left: ButtonP2Left, Right: ButtonP2Right}},
			},
			P1:       "alice",
			P2:       "bob",
			Expected: ErrInvalidControls,
		},
	}

	for _, test := range tests {
		_, err := NewMatch(test.Config, test.P1, test.P2)
		if test.Expected == nil {
			require.NoError(t, err, test.Name)
			continue
		}
		require.Error(t, err, test.Name)
		require.Equal(t, test.Expected, errors.Cause(err), test.Name)
	}
}

func TestMatchFrame(t *testing.T) {
	m, err := NewMatch(commonConfig, "alice", "bob")
	require.NoError(t, err)

	f := m.Frame()
	require.Equal(t, m.ID, f.MatchID)
	require.Equal(t, MatchStatusPlaying, f.Status)
	require.Len(t, f.Snakes, 2)
	require.Equal(t, "alice", f.Snakes[0].Name)
	require.Equal(t, m.Fruits, f.Fruits)
	require.Nil(t, f.Result)
	require.Empty(t, f.Eaten)

	f.Snakes[0].Body[0] = Cell{}
	f.Fruits[0].Type = FruitType(9)
	require.Equal(t, Cell{X: 200, Y: 200}, m.Snakes[0].Head())
	require.True(t, m.Fruits[0].Type.Valid())
}
