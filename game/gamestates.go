package game

// Stage represents where the current level is in its lifecycle
// idle -> no board yet
// active -> level in progress
// complete -> every token matched
type Stage int

const (
	Idle Stage = iota
	Active
	Complete
)

var stageNames = []string{"idle", "active", "complete"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return ""
	}
	return stageNames[s]
}

// Outcome describes what a reveal did to a session
type Outcome int

const (
	Ignored Outcome = iota
	Revealed
	PendingMatch
	PendingMismatch
)

var outcomeNames = []string{"ignored", "revealed", "pendingMatch", "pendingMismatch"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return ""
	}
	return outcomeNames[o]
}

// Pending reports whether the outcome needs a delayed Resolve
func (o Outcome) Pending() bool {
	return o == PendingMatch || o == PendingMismatch
}
