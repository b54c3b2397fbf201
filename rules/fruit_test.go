package rules

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFruitColors(t *testing.T) {
	require.Equal(t, ColorRed, FruitNormal.Color())
	require.Equal(t, ColorYellow, FruitBoost.Color())
	require.Equal(t, ColorBlue, FruitLengthen.Color())
	require.Panics(t, func() { FruitType(9).Color() })
}

func TestNewFruit(t *testing.T) {
	for _, ft := range FruitTypes {
		f, err := NewFruit(ft, Cell{X: 10, Y: 20})
		require.NoError(t, err)
		require.Equal(t, ft, f.Type)
		require.Equal(t, ft.Color(), f.Color())
	}

	_, err := NewFruit(fruitTypeCount, Cell{})
	require.Error(t, err)
	require.Equal(t, ErrUnknownFruitType, errors.Cause(err))
}

func TestSpawnFruit(t *testing.T) {
	f := SpawnFruit(testGrid(t), newScriptedRand(2, 3, 4))
	require.Equal(t, Fruit{Type: FruitLengthen, Position: Cell{X: 30, Y: 40}}, f)

	f = SpawnFruit(testGrid(t), newScriptedRand(1, 9, 0))
	require.Equal(t, Fruit{Type: FruitBoost, Position: Cell{X: 90, Y: 0}}, f)
}

func TestFruitEffect_Normal(t *testing.T) {
	for roll, growth := range []int{1, 2, 3} {
		s := testSnake(t, Cell{X: 50, Y: 50}, SystemClock{})
		Fruit{Type: FruitNormal}.Effect(s, newScriptedRand(roll))
		require.Len(t, s.Body, InitialLength+growth)
		require.Equal(t, growth, s.Score)
		require.Equal(t, BaseSpeed, s.Speed)
	}
}

func TestFruitEffect_Boost(t *testing.T) {
	clock := NewManualClock(epoch)
	s := testSnake(t, Cell{X: 50, Y: 50}, clock)
	Fruit{Type: FruitBoost}.Effect(s, newScriptedRand())
	require.Equal(t, BaseSpeed*BoostMultiplier, s.Speed)
	require.Len(t, s.Body, InitialLength)
	require.Zero(t, s.Score)
	require.Equal(t, epoch.Add(BoostDuration), s.BoostEnd)
}

func TestFruitEffect_Lengthen(t *testing.T) {
	s := testSnake(t, Cell{X: 50, Y: 50}, SystemClock{})
	Fruit{Type: FruitLengthen}.Effect(s, newScriptedRand())
	require.Len(t, s.Body, InitialLength+4)
	require.Equal(t, 4, s.Score)
}

func TestFruitEffect_UnknownType(t *testing.T) {
	s := testSnake(t, Cell{X: 50, Y: 50}, SystemClock{})
	require.Panics(t, func() { Fruit{Type: FruitType(7)}.Effect(s, newScriptedRand()) })
}

func TestFruitJSON(t *testing.T) {
	data, err := json.Marshal(Fruit{Type: FruitBoost, Position: Cell{X: 20, Y: 40}})
	require.NoError(t, err)
	require.JSONEq(t, `{"position":{"x":20,"y":40},"type":"boost"}`, string(data))

	var f Fruit
	require.NoError(t, json.Unmarshal(data, &f))
	require.Equal(t, FruitBoost, f.Type)

	require.Error(t, json.Unmarshal([]byte(`{"type":"rotten"}`), &f))
}
