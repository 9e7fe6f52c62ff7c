package store

import "github.com/jmoiron/sqlx"

// Store persists the candidate list and the single running tournament.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}
