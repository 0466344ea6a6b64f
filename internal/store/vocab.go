package store

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

// AddVocab saves a word for a book. A (word, book) pair that already exists
// is rejected with ErrConflict, never overwritten.
func (s *Store) AddVocab(entry *model.VocabEntry) (*model.VocabEntry, error) {
	if entry.Word == "" || entry.BookID == "" {
		return nil, errors.Wrap(ErrValidation, "word and book id are required")
	}
	if entry.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		entry.ID = id
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM vocab WHERE book_id = ? AND word = ?`, entry.BookID, entry.Word).Scan(&exists); err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, errors.Wrapf(ErrConflict, "word %q already saved for this book", entry.Word)
	}

	stmt := `
        INSERT INTO vocab (id, book_id, word, meaning)
        VALUES (?, ?, ?, ?)
        RETURNING id, book_id, word, meaning, created_ts
    `
	var v model.VocabEntry
	if err := tx.QueryRow(stmt, entry.ID, entry.BookID, entry.Word, entry.Meaning).Scan(
		&v.ID, &v.BookID, &v.Word, &v.Meaning, &v.CreatedTs,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) ListVocab(find *model.FindVocab) ([]*model.VocabEntry, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.Word; v != nil {
		where, args = append(where, "word = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            book_id,
            word,
            meaning,
            created_ts
        FROM vocab
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query vocab", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.VocabEntry, 0)
	for rows.Next() {
		var v model.VocabEntry
		if err := rows.Scan(
			&v.ID,
			&v.BookID,
			&v.Word,
			&v.Meaning,
			&v.CreatedTs,
		); err != nil {
			log.Error("Failed to scan vocab entry", zap.Error(err))
			return nil, err
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (s *Store) RemoveVocab(id string) error {
	stmt := `DELETE FROM vocab WHERE id = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	res, err := s.db.Exec(stmt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
