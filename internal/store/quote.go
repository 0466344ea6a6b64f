package store

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

func (s *Store) AddQuote(quote *model.Quote) (*model.Quote, error) {
	if quote.Text == "" || quote.BookID == "" {
		return nil, errors.Wrap(ErrValidation, "text and book id are required")
	}
	if quote.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		quote.ID = id
	}

	stmt := `
        INSERT INTO quotes (id, book_id, text, note, page_index, pos_x, pos_y, pos_width, pos_height, color)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, book_id, text, note, page_index, pos_x, pos_y, pos_width, pos_height, color, created_ts
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var q model.Quote
	if err := tx.QueryRow(stmt,
		quote.ID, quote.BookID, quote.Text, quote.Note, quote.PageIndex,
		quote.Position.X, quote.Position.Y, quote.Position.Width, quote.Position.Height,
		quote.Color,
	).Scan(
		&q.ID, &q.BookID, &q.Text, &q.Note, &q.PageIndex,
		&q.Position.X, &q.Position.Y, &q.Position.Width, &q.Position.Height,
		&q.Color, &q.CreatedTs,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuotes returns quotes most recent first.
func (s *Store) ListQuotes(find *model.FindQuote) ([]*model.Quote, error) {
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
            text,
            note,
            page_index,
            pos_x,
            pos_y,
            pos_width,
            pos_height,
            color,
            created_ts
        FROM quotes
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query quotes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Quote, 0)
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(
			&q.ID,
			&q.BookID,
			&q.Text,
			&q.Note,
			&q.PageIndex,
			&q.Position.X,
			&q.Position.Y,
			&q.Position.Width,
			&q.Position.Height,
			&q.Color,
			&q.CreatedTs,
		); err != nil {
			log.Error("Failed to scan quote", zap.Error(err))
			return nil, err
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

func (s *Store) RemoveQuote(id string) error {
	stmt := `DELETE FROM quotes WHERE id = ?`

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
