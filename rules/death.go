package rules

type deathUpdate struct {
	Loser  int
	Winner int
	Cause  string
}

// checkForDeath looks at both snakes after they have moved. The first snake is
// checked first, so when both heads run into each other the second snake
// wins.
func checkForDeath(snakes [2]*Snake) *deathUpdate {
	if cause, dead := deathCause(snakes[0], snakes[1]); dead {
		return &deathUpdate{Loser: 0, Winner: 1, Cause: cause}
	}
	if cause, dead := deathCause(snakes[1], snakes[0]); dead {
		return &deathUpdate{Loser: 1, Winner: 0, Cause: cause}
	}
	return nil
}

func deathCause(s, other *Snake) (string, bool) {
	if s.CheckSelfCollision() {
		return DeathCauseSnakeSelfCollision, true
	}
	if s.CheckCollision(other) {
		if deathByHeadCollision(s, other) {
			return DeathCauseHeadToHeadCollision, true
		}
		return DeathCauseSnakeCollision, true
	}
	return "", false
}

func deathByHeadCollision(snake, other *Snake) bool {
	return snake.Head().Equal(other.Head())
}
