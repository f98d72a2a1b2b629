package repository

import (
	"database/sql"
	"errors"

	"mapban/internal/models"
)

var (
	// ErrNotFound means no match exists for the given key.
	ErrNotFound = errors.New("match not found")
	// ErrDuplicateSlug means a match for the same pairing already exists.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrVersionConflict means a conditional update lost the race: the
	// stored version no longer matches the one the caller loaded, or the
	// row was deleted mid-flight. The caller must re-fetch before retrying.
	ErrVersionConflict = errors.New("match version conflict")
)

// Match is the persistence gateway the state machine writes through. Every
// mutation of an existing match goes through UpdateIfVersion so that
// concurrent writers against the same match serialize to exactly one
// winner.
type Match interface {
	Insert(match models.Match) error
	GetByID(id string) (*models.Match, error)
	GetBySlug(slug string) (*models.Match, error)
	GetByPairing(pairing string) (*models.Match, error)
	GetByToken(token string) (*models.Match, error)
	GetAll() ([]models.Match, error)
	UpdateIfVersion(id string, expectedVersion int, match models.Match) error
	Delete(id string) error
	DeleteMany(ids []string) (int64, error)
}

type Repository struct {
	Match
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Match: NewMatchPostgres(db),
		db:    db,
	}
}
