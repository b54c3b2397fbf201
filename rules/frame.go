package rules

// SnakeView is a copy of a snake's drawable state.
type SnakeView struct {
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	Body      []Cell    `json:"body"`
	Direction Direction `json:"direction"`
	Score     int       `json:"score"`
	Speed     int       `json:"speed"`
	Boosted   bool      `json:"boosted"`
}

// Head returns the first cell in the body
func (v SnakeView) Head() Cell { return v.Body[0] }

// Consumption records a fruit eaten during a tick.
type Consumption struct {
	Slot  int    `json:"slot"`
	Snake string `json:"snake"`
	Fruit Fruit  `json:"fruit"`
}

// Frame is everything a renderer needs to draw one tick. Frames are deep
// copies and stay valid after the match moves on.
type Frame struct {
	MatchID string        `json:"matchId"`
	Turn    int64         `json:"turn"`
	Status  MatchStatus   `json:"status"`
	Grid    Grid          `json:"grid"`
	Snakes  []SnakeView   `json:"snakes"`
	Fruits  []Fruit       `json:"fruits"`
	Eaten   []Consumption `json:"eaten,omitempty"`
	Result  *MatchResult  `json:"result,omitempty"`
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID     string `json:"matchId"`
	Turn        int64  `json:"turn"`
	Winner      string `json:"winner"`
	Loser       string `json:"loser"`
	WinnerScore int    `json:"winnerScore"`
	LoserScore  int    `json:"loserScore"`
	// WinnerSlot is 0 for the first snake, 1 for the second.
	WinnerSlot int `json:"winnerSlot"`
	// Cause is how the loser died, one of the DeathCause constants.
	Cause string `json:"cause"`
}
