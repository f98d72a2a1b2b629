package models

import (
	"strings"
	"time"
)

// State is the match lifecycle. A match is created with a fixed pool and
// first turn, moves to StateInProgress on the first accepted ban, and is
// finished once a single map remains.
type State string

const (
	StateCreated    State = "created"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

func (s State) Valid() bool {
	switch s {
	case StateCreated, StateInProgress, StateFinished:
		return true
	}
	return false
}

// Terminal reports whether no further bans are accepted.
func (s State) Terminal() bool {
	return s == StateFinished
}

// Team identifiers as stored in CurrentTurn and Ban.By.
const (
	TeamA = "A"
	TeamB = "B"
)

// Opponent returns the other team letter.
func Opponent(team string) string {
	if team == TeamA {
		return TeamB
	}
	return TeamA
}

type Match struct {
	ID         string   `json:"id" db:"id"`
	Slug       string   `json:"slug" db:"slug"`
	Pairing    string   `json:"-" db:"pairing"`
	TeamAName  string   `json:"teamA_name" db:"team_a_name"`
	TeamBName  string   `json:"teamB_name" db:"team_b_name"`
	TeamAToken string   `json:"-" db:"team_a_token"`
	TeamBToken string   `json:"-" db:"team_b_token"`
	MapPool    []string `json:"map_pool" db:"map_pool"`
	Bans       []Ban    `json:"bans" db:"bans"`

	// CurrentTurn is "A" or "B" while the match is open, empty once finished.
	CurrentTurn string     `json:"current_turn" db:"current_turn"`
	State       State      `json:"state" db:"state"`
	Version     int        `json:"-" db:"version"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	FinishedAt  *time.Time `json:"finished_at" db:"finished_at"`
}

// Ban is one ledger entry. Map always carries the pool's canonical casing.
type Ban struct {
	Map string    `json:"map"`
	By  string    `json:"by"`
	At  time.Time `json:"at"`
}

// PoolMap resolves a caller-supplied map name to the pool's canonical
// spelling. Matching is case-insensitive.
func (m *Match) PoolMap(name string) (string, bool) {
	for _, p := range m.MapPool {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	return "", false
}

// Banned reports whether a map already appears in the ledger.
func (m *Match) Banned(name string) bool {
	for _, b := range m.Bans {
		if strings.EqualFold(b.Map, name) {
			return true
		}
	}
	return false
}

// Remaining derives the unbanned maps in pool order. It is never stored.
func (m *Match) Remaining() []string {
	remaining := make([]string, 0, len(m.MapPool))
	for _, p := range m.MapPool {
		banned := false
		for _, b := range m.Bans {
			if b.Map == p {
				banned = true
				break
			}
		}
		if !banned {
			remaining = append(remaining, p)
		}
	}
	return remaining
}

// FinalMap returns the decided outcome, or empty while more than one map
// remains.
func (m *Match) FinalMap() string {
	remaining := m.Remaining()
	if len(remaining) == 1 {
		return remaining[0]
	}
	return ""
}

// TeamForToken maps a capability token to its team letter.
func (m *Match) TeamForToken(token string) (string, bool) {
	switch token {
	case m.TeamAToken:
		return TeamA, true
	case m.TeamBToken:
		return TeamB, true
	}
	return "", false
}

// OpponentName returns the display name of the other team.
func (m *Match) OpponentName(team string) string {
	if team == TeamA {
		return m.TeamBName
	}
	return m.TeamAName
}
