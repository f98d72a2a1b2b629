package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"mapban/internal/models"

	"github.com/lib/pq"
)

const matchColumns = `id, slug, pairing, team_a_name, team_b_name, team_a_token, team_b_token,
	map_pool, bans, current_turn, state, version, created_at, finished_at`

type MatchPostgres struct {
	db *sql.DB
}

func NewMatchPostgres(db *sql.DB) *MatchPostgres {
	return &MatchPostgres{db: db}
}

func (r *MatchPostgres) Insert(match models.Match) error {
	pool, bans, err := marshalJSONColumns(&match)
	if err != nil {
		return err
	}

	query := `INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.db.Exec(query,
		match.ID, match.Slug, match.Pairing, match.TeamAName, match.TeamBName,
		match.TeamAToken, match.TeamBToken, pool, bans,
		nullableTurn(match.CurrentTurn), string(match.State), match.Version,
		match.CreatedAt, match.FinishedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *MatchPostgres) GetByID(id string) (*models.Match, error) {
	return r.getOne("SELECT "+matchColumns+" FROM matches WHERE id = $1", id)
}

func (r *MatchPostgres) GetBySlug(slug string) (*models.Match, error) {
	return r.getOne("SELECT "+matchColumns+" FROM matches WHERE slug = $1", slug)
}

func (r *MatchPostgres) GetByPairing(pairing string) (*models.Match, error) {
	return r.getOne("SELECT "+matchColumns+" FROM matches WHERE pairing = $1", pairing)
}

func (r *MatchPostgres) GetByToken(token string) (*models.Match, error) {
	return r.getOne("SELECT "+matchColumns+
		" FROM matches WHERE team_a_token = $1 OR team_b_token = $1", token)
}

func (r *MatchPostgres) getOne(query string, arg interface{}) (*models.Match, error) {
	match, err := scanMatch(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match: %w", err)
	}
	return match, nil
}

func (r *MatchPostgres) GetAll() ([]models.Match, error) {
	rows, err := r.db.Query("SELECT " + matchColumns +
		" FROM matches ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// UpdateIfVersion commits a new match state only if the stored version
// still equals expectedVersion, bumping the version on success. Zero rows
// affected means another writer (or a delete) got there first.
func (r *MatchPostgres) UpdateIfVersion(id string, expectedVersion int, match models.Match) error {
	// The pool is immutable after creation; only the ledger and the
	// derived turn/state/finished columns are written.
	bans, err := json.Marshal(match.Bans)
	if err != nil {
		return fmt.Errorf("failed to encode bans: %w", err)
	}

	query := `UPDATE matches SET
		bans = $1, current_turn = $2, state = $3, finished_at = $4, version = version + 1
		WHERE id = $5 AND version = $6`
	res, err := r.db.Exec(query, bans, nullableTurn(match.CurrentTurn),
		string(match.State), match.FinishedAt, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *MatchPostgres) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM matches WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MatchPostgres) DeleteMany(ids []string) (int64, error) {
	res, err := r.db.Exec("DELETE FROM matches WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	var pool, bans []byte
	var turn, state sql.NullString
	if err := row.Scan(&m.ID, &m.Slug, &m.Pairing, &m.TeamAName, &m.TeamBName,
		&m.TeamAToken, &m.TeamBToken, &pool, &bans, &turn, &state,
		&m.Version, &m.CreatedAt, &m.FinishedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(pool, &m.MapPool); err != nil {
		return nil, fmt.Errorf("failed to decode map pool: %w", err)
	}
	if err := json.Unmarshal(bans, &m.Bans); err != nil {
		return nil, fmt.Errorf("failed to decode bans: %w", err)
	}
	m.CurrentTurn = turn.String
	m.State = models.State(state.String)
	return &m, nil
}

func marshalJSONColumns(m *models.Match) (pool, bans []byte, err error) {
	pool, err = json.Marshal(m.MapPool)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode map pool: %w", err)
	}
	if m.Bans == nil {
		bans = []byte("[]")
	} else if bans, err = json.Marshal(m.Bans); err != nil {
		return nil, nil, fmt.Errorf("failed to encode bans: %w", err)
	}
	return pool, bans, nil
}

func nullableTurn(turn string) sql.NullString {
	return sql.NullString{String: turn, Valid: turn != ""}
}
