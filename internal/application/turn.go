package application

import (
	"time"

	"mapban/internal/models"
)

// banDecision is the computed transition for an accepted ban.
type banDecision struct {
	ban        models.Ban
	nextTurn   string
	nextState  models.State
	finishedAt *time.Time
}

// decideBan is the turn engine: a pure function of the current match state
// and the requested ban. Checks short-circuit in order; the first failing
// one wins. Both "created" and "in_progress" are open for play -- the
// first accepted ban is what moves a match to "in_progress".
func decideBan(m *models.Match, team, mapName string, now time.Time) (banDecision, error) {
	if m.State.Terminal() {
		return banDecision{}, ErrMatchFinished
	}
	if m.CurrentTurn != team {
		return banDecision{}, ErrNotYourTurn
	}

	canonical, ok := m.PoolMap(mapName)
	if !ok {
		return banDecision{}, ErrUnknownMap
	}
	if m.Banned(canonical) {
		return banDecision{}, ErrAlreadyBanned
	}

	d := banDecision{
		ban: models.Ban{Map: canonical, By: team, At: now},
	}

	// The ledger is bounded by pool size minus one: once a single map
	// would remain, the match finishes and that map is the outcome.
	if len(m.MapPool)-len(m.Bans)-1 == 1 {
		d.nextState = models.StateFinished
		d.nextTurn = ""
		finished := now
		d.finishedAt = &finished
	} else {
		d.nextState = models.StateInProgress
		d.nextTurn = models.Opponent(team)
	}
	return d, nil
}
