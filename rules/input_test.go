package rules

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewControls(t *testing.T) {
	c, err := NewControls(ButtonP2Up, ButtonP2Down, ButtonP2Left, ButtonP2Right)
	require.NoError(t, err)
	require.Equal(t, Player2Controls, c)

	_, err = NewControls(ButtonP1Up, ButtonP1Up, ButtonP1Left, ButtonP1Right)
	require.Equal(t, ErrInvalidControls, errors.Cause(err))

	_, err = NewControls(ButtonP1Up, ButtonP1Down, ButtonQuit, ButtonP1Right)
	require.Equal(t, ErrInvalidControls, errors.Cause(err))
}

func TestKeyState(t *testing.T) {
	var keys KeyState
	require.False(t, keys.Pressed(ButtonQuit))
	keys.Press(ButtonQuit)
	keys.Press(Button(200))
	require.True(t, keys.Pressed(ButtonQuit))
	require.False(t, keys.Pressed(ButtonP1Up))
	require.False(t, keys.Pressed(Button(200)))
	require.Equal(t, "p2-left", ButtonP2Left.String())
}
