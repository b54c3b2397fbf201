package rules

// MatchStatus is the state of a match.
type MatchStatus string

const (
	// MatchStatusNaming is the phase where the players enter their names. It
	// is driven outside the match; a constructed match is already playing.
	MatchStatusNaming MatchStatus = "naming"
	// MatchStatusPlaying is a match that is ticking.
	MatchStatusPlaying MatchStatus = "playing"
	// MatchStatusFinished is a match that has produced its result.
	MatchStatusFinished MatchStatus = "finished"
)
