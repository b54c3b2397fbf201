package rules

const (
	// DeathCauseSnakeCollision is the death reason when a snake runs its head
	// into the other snake's body
	DeathCauseSnakeCollision = "snake-collision"
	// DeathCauseSnakeSelfCollision is the death reason when a snake runs into
	// its own body
	DeathCauseSnakeSelfCollision = "snake-self-collision"
	// DeathCauseHeadToHeadCollision is when both heads end the tick on the
	// same cell
	DeathCauseHeadToHeadCollision = "head-collision"
)
