package rules

import (
	"fmt"
	"time"
)

const (
	// BaseSpeed is the number of cells a snake advances per tick.
	BaseSpeed = 1
	// BoostMultiplier scales BaseSpeed while a boost is active.
	BoostMultiplier = 2
	// BoostDuration is how long a speed boost lasts.
	BoostDuration = 5 * time.Second
	// InitialLength is the body length of a new snake.
	InitialLength = 3
)

// Snake is one player's snake. The head is Body[0], the tail is the last
// element.
type Snake struct {
	Name      string
	Color     Color
	Controls  Controls
	Body      []Cell
	Direction Direction
	Speed     int
	Score     int
	// BoostEnd is when the current boost expires, zero when not boosted.
	BoostEnd time.Time

	grid  Grid
	clock Clock
}

// NewSnake creates a snake whose head is at head (wrapped) with the rest of
// the body trailing to its left, heading right.
func NewSnake(name string, color Color, controls Controls, head Cell, grid Grid, clock Clock) *Snake {
	return &Snake{
		Name:      name,
		Color:     color,
		Controls:  controls,
		Body:      startBody(grid, head),
		Direction: DirectionRight,
		Speed:     BaseSpeed,
		grid:      grid,
		clock:     clock,
	}
}

func startBody(grid Grid, head Cell) []Cell {
	body := make([]Cell, 0, InitialLength)
	body = append(body, grid.Wrap(head))
	for i := 1; i < InitialLength; i++ {
		body = append(body, grid.Step(body[i-1], DirectionLeft))
	}
	return body
}

// Head returns the first cell in the body
func (s *Snake) Head() Cell {
	return s.Body[0]
}

// Tail returns the last cell in the body
func (s *Snake) Tail() Cell {
	return s.Body[len(s.Body)-1]
}

// Len is the body length.
func (s *Snake) Len() int { return len(s.Body) }

// Move advances the head Speed cells in the current direction. Each step
// prepends a new head and drops the last cell, so cells duplicated by Grow
// are what lengthen the snake.
func (s *Snake) Move() {
	if s.Speed <= 0 {
		panic(fmt.Sprintf("rules: snake %q has non-positive speed %d", s.Name, s.Speed))
	}
	for i := 0; i < s.Speed; i++ {
		next := s.grid.Step(s.Head(), s.Direction)
		copy(s.Body[1:], s.Body[:len(s.Body)-1])
		s.Body[0] = next
	}
}

// Grow duplicates the tail cell and scores a point.
func (s *Snake) Grow() {
	s.Body = append(s.Body, s.Tail())
	s.Score++
}

// ChangeDirection turns the snake unless d would reverse it into its own neck.
func (s *Snake) ChangeDirection(d Direction) {
	if d == s.Direction.Opposite() {
		return
	}
	s.Direction = d
}

// CheckSelfCollision reports whether the head overlaps the rest of the body.
func (s *Snake) CheckSelfCollision() bool {
	head := s.Head()
	for _, c := range s.Body[1:] {
		if head.Equal(c) {
			return true
		}
	}
	return false
}

// CheckCollision reports whether the head overlaps any cell of other,
// other's head included.
func (s *Snake) CheckCollision(other *Snake) bool {
	head := s.Head()
	for _, c := range other.Body {
		if head.Equal(c) {
			return true
		}
	}
	return false
}

// ActivateSpeedBoost doubles the speed for BoostDuration. Activating again
// while boosted only restarts the window.
func (s *Snake) ActivateSpeedBoost() {
	s.Speed = BaseSpeed * BoostMultiplier
	s.BoostEnd = s.clock.Now().Add(BoostDuration)
}

// Boosted reports whether a speed boost is active.
func (s *Snake) Boosted() bool {
	return !s.BoostEnd.IsZero()
}

// Update expires the speed boost once its window has passed. It must be
// called every tick.
func (s *Snake) Update() {
	if !s.Boosted() {
		return
	}
	if s.clock.Now().After(s.BoostEnd) {
		s.Speed = BaseSpeed
		s.BoostEnd = time.Time{}
	}
}

// HandleInput applies at most one direction change. Up beats down beats left
// beats right when several keys are held.
func (s *Snake) HandleInput(keys KeyState) {
	switch {
	case keys.Pressed(s.Controls.Up):
		s.ChangeDirection(DirectionUp)
	case keys.Pressed(s.Controls.Down):
		s.ChangeDirection(DirectionDown)
	case keys.Pressed(s.Controls.Left):
		s.ChangeDirection(DirectionLeft)
	case keys.Pressed(s.Controls.Right):
		s.ChangeDirection(DirectionRight)
	}
}

// View returns a copy of the snake for rendering.
func (s *Snake) View() SnakeView {
	body := make([]Cell, len(s.Body))
	copy(body, s.Body)
	return SnakeView{
		Name:      s.Name,
		Color:     s.Color,
		Body:      body,
		Direction: s.Direction,
		Score:     s.Score,
		Speed:     s.Speed,
		Boosted:   s.Boosted(),
	}
}
