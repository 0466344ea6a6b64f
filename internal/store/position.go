package store

import (
	"github.com/Risriddle/Librarize/internal/model"
)

// GetPosition returns the last-read page for a book, page zero when the
// book was never opened.
func (s *Store) GetPosition(bookID string) (*model.ReadingPosition, error) {
	query := `SELECT book_id, page_index FROM reading_positions WHERE book_id = ?`

	var p model.ReadingPosition
	if err := s.db.QueryRow(query, bookID).Scan(&p.BookID, &p.PageIndex); err != nil {
		if isNoRows(err) {
			return &model.ReadingPosition{BookID: bookID, PageIndex: 0}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) SetPosition(position *model.ReadingPosition) error {
	stmt := `
        INSERT INTO reading_positions (book_id, page_index)
        VALUES (?, ?)
        ON CONFLICT(book_id) DO UPDATE
        SET
            page_index=EXCLUDED.page_index,
            updated_ts=strftime('%s', 'now')
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	_, err := s.db.Exec(stmt, position.BookID, position.PageIndex)
	return err
}
