package application

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mapban/internal/models"
	"mapban/internal/repository"

	"github.com/google/uuid"
)

type MatchServiceImpl struct {
	repo    repository.Match
	baseURL string
	logger  Logger

	// Injected for tests.
	now        func() time.Time
	newID      func() string
	newToken   func() string
	randomTurn func() string
}

func NewMatchServiceImpl(repo repository.Match, baseURL string, logger Logger) *MatchServiceImpl {
	return &MatchServiceImpl{
		repo:     repo,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		newToken: models.NewToken,
		randomTurn: func() string {
			if rand.Intn(2) == 0 {
				return models.TeamA
			}
			return models.TeamB
		},
	}
}

// CreateMatch is idempotent by pairing: if a match already exists for the
// same two team names, in either order, its identifiers are returned and
// nothing is written.
func (s *MatchServiceImpl) CreateMatch(in CreateMatchInput) (*CreateMatchResult, error) {
	teamA := strings.TrimSpace(in.TeamAName)
	teamB := strings.TrimSpace(in.TeamBName)
	if teamA == "" || teamB == "" {
		return nil, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}

	pool, err := normalizePool(in.MapPool)
	if err != nil {
		return nil, err
	}

	firstTurn, err := s.resolveFirstTurn(in.FirstTurn)
	if err != nil {
		return nil, err
	}

	if existing, err := s.findPairing(teamA, teamB); err != nil {
		return nil, err
	} else if existing != nil {
		return s.creationResult(existing, true), nil
	}

	match := models.Match{
		ID:          s.newID(),
		Slug:        models.Slug(teamA, teamB),
		Pairing:     models.Pairing(teamA, teamB),
		TeamAName:   teamA,
		TeamBName:   teamB,
		TeamAToken:  s.newToken(),
		TeamBToken:  s.newToken(),
		MapPool:     pool,
		Bans:        []models.Ban{},
		CurrentTurn: firstTurn,
		State:       models.StateCreated,
		Version:     1,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Insert(match); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			// Lost a creation race for the same pairing, possibly with
			// the team names in the other order; the winner's match is
			// just as good.
			existing, lookupErr := s.findPairing(teamA, teamB)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing == nil {
				return nil, fmt.Errorf("failed to load existing match: %w", err)
			}
			return s.creationResult(existing, true), nil
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.logger.Info("match created", "id", match.ID, "slug", match.Slug)
	return s.creationResult(&match, false), nil
}

// SubmitBan resolves a capability token to its match and team, asks the
// turn engine for the transition, and commits it conditionally on the
// version the match was loaded at. A losing writer gets ErrConflict and
// must re-fetch.
func (s *MatchServiceImpl) SubmitBan(token, mapName string) (*BanResult, error) {
	if strings.TrimSpace(mapName) == "" {
		return nil, fmt.Errorf("%w: map is required", ErrInvalidInput)
	}

	match, err := s.matchForToken(token)
	if err != nil {
		return nil, err
	}
	team, _ := match.TeamForToken(token)

	decision, err := decideBan(match, team, mapName, s.now())
	if err != nil {
		return nil, err
	}

	updated := *match
	updated.Bans = append(append([]models.Ban{}, match.Bans...), decision.ban)
	updated.CurrentTurn = decision.nextTurn
	updated.State = decision.nextState
	updated.FinishedAt = decision.finishedAt

	if err := s.repo.UpdateIfVersion(match.ID, match.Version, updated); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to commit ban: %w", err)
	}

	s.logger.Info("ban committed", "match", match.ID, "team", team, "map", decision.ban.Map)
	return &BanResult{
		State:       updated.State,
		CurrentTurn: updated.CurrentTurn,
		Remaining:   updated.Remaining(),
		FinalMap:    updated.FinalMap(),
	}, nil
}

func (s *MatchServiceImpl) PlayState(token string) (*PlayView, error) {
	match, err := s.matchForToken(token)
	if err != nil {
		return nil, err
	}
	team, _ := match.TeamForToken(token)

	return &PlayView{
		Team:        team,
		Opponent:    match.OpponentName(team),
		State:       match.State,
		CurrentTurn: match.CurrentTurn,
		YourTurn:    match.CurrentTurn == team,
		Remaining:   match.Remaining(),
		FinalMap:    match.FinalMap(),
		PublicURL:   s.baseURL + "/bans/" + match.Slug,
	}, nil
}

func (s *MatchServiceImpl) PublicState(slug string) (*PublicView, error) {
	match, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	return &PublicView{
		Slug:        match.Slug,
		TeamA:       match.TeamAName,
		TeamB:       match.TeamBName,
		State:       match.State,
		MapPool:     match.MapPool,
		Bans:        match.Bans,
		Remaining:   match.Remaining(),
		CurrentTurn: match.CurrentTurn,
		FinalMap:    match.FinalMap(),
	}, nil
}

func (s *MatchServiceImpl) ListMatches() ([]MatchSummary, error) {
	matches, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for i := range matches {
		summaries = append(summaries, summarize(&matches[i]))
	}
	return summaries, nil
}

func (s *MatchServiceImpl) AdminMatches() ([]AdminMatch, error) {
	matches, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	result := make([]AdminMatch, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		result = append(result, AdminMatch{
			MatchSummary: summarize(m),
			TeamAToken:   m.TeamAToken,
			TeamBToken:   m.TeamBToken,
			MatchLinks:   s.links(m),
		})
	}
	return result, nil
}

func (s *MatchServiceImpl) DeleteMatch(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match: %w", err)
	}
	s.logger.Info("match deleted", "id", id)
	return nil
}

func (s *MatchServiceImpl) DeleteMatches(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: match ids are required", ErrInvalidInput)
	}
	deleted, err := s.repo.DeleteMany(ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches: %w", err)
	}
	s.logger.Info("matches deleted", "count", deleted)
	return deleted, nil
}

func (s *MatchServiceImpl) matchForToken(token string) (*models.Match, error) {
	match, err := s.repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	return match, nil
}

// findPairing looks the matchup up under its order-insensitive pairing
// key, so that creating B-vs-A after A-vs-B resolves to the same match.
func (s *MatchServiceImpl) findPairing(teamA, teamB string) (*models.Match, error) {
	match, err := s.repo.GetByPairing(models.Pairing(teamA, teamB))
	if err == nil {
		return match, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to check existing match: %w", err)
}

func (s *MatchServiceImpl) resolveFirstTurn(firstTurn string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(firstTurn)) {
	case models.TeamA:
		return models.TeamA, nil
	case models.TeamB:
		return models.TeamB, nil
	case "", "RANDOM":
		return s.randomTurn(), nil
	}
	return "", fmt.Errorf("%w: first_turn must be A, B or random", ErrInvalidInput)
}

func (s *MatchServiceImpl) creationResult(m *models.Match, exists bool) *CreateMatchResult {
	return &CreateMatchResult{
		Exists:     exists,
		ID:         m.ID,
		Slug:       m.Slug,
		MatchLinks: s.links(m),
	}
}

func (s *MatchServiceImpl) links(m *models.Match) MatchLinks {
	return MatchLinks{
		PublicURL: s.baseURL + "/bans/" + m.Slug,
		TeamAURL:  s.baseURL + "/play/" + m.TeamAToken,
		TeamBURL:  s.baseURL + "/play/" + m.TeamBToken,
	}
}

func normalizePool(pool []string) ([]string, error) {
	if pool == nil {
		return append([]string(nil), models.DefaultMapPool...), nil
	}

	normalized := make([]string, 0, len(pool))
	seen := make(map[string]struct{}, len(pool))
	for _, name := range pool {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: map names must not be empty", ErrInvalidInput)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate map %q in pool", ErrInvalidInput, name)
		}
		seen[key] = struct{}{}
		normalized = append(normalized, name)
	}
	if len(normalized) < 2 {
		return nil, fmt.Errorf("%w: map pool needs at least 2 maps", ErrInvalidInput)
	}
	return normalized, nil
}

func summarize(m *models.Match) MatchSummary {
	return MatchSummary{
		ID:          m.ID,
		Slug:        m.Slug,
		TeamAName:   m.TeamAName,
		TeamBName:   m.TeamBName,
		State:       m.State,
		CurrentTurn: m.CurrentTurn,
		CreatedAt:   m.CreatedAt,
		FinishedAt:  m.FinishedAt,
		FinalMap:    m.FinalMap(),
		BansCount:   len(m.Bans),
		TotalMaps:   len(m.MapPool),
	}
}
