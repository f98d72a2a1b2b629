package application

import (
	"time"

	"mapban/internal/models"
)

type CreateMatchInput struct {
	TeamAName string   `json:"teamA_name"`
	TeamBName string   `json:"teamB_name"`
	MapPool   []string `json:"map_pool"`
	FirstTurn string   `json:"first_turn"`
}

// MatchLinks are the shareable URLs for a match. The team URLs embed the
// capability tokens and must only appear in creator/admin responses.
type MatchLinks struct {
	PublicURL string `json:"public_url"`
	TeamAURL  string `json:"teamA_url"`
	TeamBURL  string `json:"teamB_url"`
}

type CreateMatchResult struct {
	Exists bool   `json:"exists"`
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	MatchLinks
}

// BanResult is returned after a committed ban.
type BanResult struct {
	State       models.State `json:"state"`
	CurrentTurn string       `json:"current_turn"`
	Remaining   []string     `json:"remaining"`
	FinalMap    string       `json:"final_map,omitempty"`
}

// PlayView is the actor projection behind a capability token. It never
// carries the opposing team's token.
type PlayView struct {
	Team        string       `json:"team"`
	Opponent    string       `json:"opponent"`
	State       models.State `json:"state"`
	CurrentTurn string       `json:"current_turn"`
	YourTurn    bool         `json:"your_turn"`
	Remaining   []string     `json:"remaining"`
	FinalMap    string       `json:"final_map,omitempty"`
	PublicURL   string       `json:"public_url"`
}

// PublicView is the spectator projection keyed by slug: names, full
// ledger, remaining maps and the outcome, but no tokens.
type PublicView struct {
	Slug        string       `json:"slug"`
	TeamA       string       `json:"teamA"`
	TeamB       string       `json:"teamB"`
	State       models.State `json:"state"`
	MapPool     []string     `json:"map_pool"`
	Bans        []models.Ban `json:"bans"`
	Remaining   []string     `json:"remaining"`
	CurrentTurn string       `json:"current_turn"`
	FinalMap    string       `json:"final_map,omitempty"`
}

type MatchSummary struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	TeamAName   string       `json:"teamA_name"`
	TeamBName   string       `json:"teamB_name"`
	State       models.State `json:"state"`
	CurrentTurn string       `json:"current_turn"`
	CreatedAt   time.Time    `json:"created_at"`
	FinishedAt  *time.Time   `json:"finished_at"`
	FinalMap    string       `json:"final_map,omitempty"`
	BansCount   int          `json:"bans_count"`
	TotalMaps   int          `json:"total_maps"`
}

// AdminMatch is the full-detail projection, tokens included.
type AdminMatch struct {
	MatchSummary
	TeamAToken string `json:"teamA_token"`
	TeamBToken string `json:"teamB_token"`
	MatchLinks
}
