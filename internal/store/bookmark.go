package store

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

func (s *Store) AddBookmark(bookmark *model.Bookmark) (*model.Bookmark, error) {
	if bookmark.BookID == "" {
		return nil, errors.Wrap(ErrValidation, "book id is required")
	}
	if bookmark.PageIndex < 0 {
		return nil, errors.Wrap(ErrValidation, "page index must not be negative")
	}
	if bookmark.Label == "" {
		bookmark.Label = fmt.Sprintf("Page %d", bookmark.PageIndex+1)
	}
	if bookmark.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		bookmark.ID = id
	}

	stmt := `
        INSERT INTO bookmarks (id, book_id, page_index, label)
        VALUES (?, ?, ?, ?)
        RETURNING id, book_id, page_index, label, created_ts
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var b model.Bookmark
	if err := tx.QueryRow(stmt, bookmark.ID, bookmark.BookID, bookmark.PageIndex, bookmark.Label).Scan(
		&b.ID, &b.BookID, &b.PageIndex, &b.Label, &b.CreatedTs,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookmarks with a nil BookID returns every bookmark system-wide.
func (s *Store) ListBookmarks(find *model.FindBookmark) ([]*model.Bookmark, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            book_id,
            page_index,
            label,
            created_ts
        FROM bookmarks
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY page_index, created_ts`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query bookmarks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Bookmark, 0)
	for rows.Next() {
		var b model.Bookmark
		if err := rows.Scan(
			&b.ID,
			&b.BookID,
			&b.PageIndex,
			&b.Label,
			&b.CreatedTs,
		); err != nil {
			log.Error("Failed to scan bookmark", zap.Error(err))
			return nil, err
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (s *Store) RemoveBookmark(id string) error {
	stmt := `DELETE FROM bookmarks WHERE id = ?`

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
