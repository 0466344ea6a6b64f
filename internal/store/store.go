package store

import (
	"database/sql"
	"sync"
)

// Store is the persistence layer. All entity access goes through here.
// bookCache avoids re-reading hot book rows, the reading-log rating
// overlay leans on it.
type Store struct {
	db     *sql.DB
	dbLock sync.Mutex

	bookCache sync.Map // map[string]*model.Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}
