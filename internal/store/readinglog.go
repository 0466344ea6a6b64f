package store

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

// AddBooksToMonth merges books into one month of the year-nested log.
// The merge is a set union keyed by book id: ids already present are left
// untouched, done with a conditional insert so two concurrent merges
// against the same month cannot duplicate a book.
func (s *Store) AddBooksToMonth(year int, month string, books []model.BookSnapshot) (*model.MonthLog, error) {
	if year == 0 || month == "" {
		return nil, errors.Wrap(ErrValidation, "year and month are required")
	}

	s.dbLock.Lock()
	tx, err := s.db.Begin()
	if err != nil {
		s.dbLock.Unlock()
		return nil, err
	}

	stmt := `
        INSERT INTO reading_log (year, month, book_id, title, author, rating, cover_url)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(year, month, book_id) DO NOTHING
    `
	for _, book := range books {
		if book.ID == "" {
			tx.Rollback()
			s.dbLock.Unlock()
			return nil, errors.Wrap(ErrValidation, "book id is required")
		}
		if _, err := tx.Exec(stmt, year, month, book.ID, book.Title, book.Author, book.Rating, book.CoverURL); err != nil {
			tx.Rollback()
			s.dbLock.Unlock()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.dbLock.Unlock()
		return nil, err
	}
	s.dbLock.Unlock()

	merged, err := s.listLogBooks(`SELECT book_id, title, author, rating, cover_url FROM reading_log WHERE year = ? AND month = ? ORDER BY created_ts, book_id`, year, month)
	if err != nil {
		return nil, err
	}
	return &model.MonthLog{Month: month, Books: merged}, nil
}

// RemoveBookFromMonth fails with ErrNotFound whether the year, the month
// or the book inside the month is absent.
func (s *Store) RemoveBookFromMonth(year int, month string, bookID string) error {
	stmt := `DELETE FROM reading_log WHERE year = ? AND month = ? AND book_id = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	res, err := s.db.Exec(stmt, year, month, bookID)
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

// GetYear returns month -> books for one year. Each snapshot's rating is
// overlaid with the live book rating when the book still exists and has
// one, the stored snapshot is not rewritten.
func (s *Store) GetYear(year int) (map[string][]model.BookSnapshot, error) {
	query := `
        SELECT month, book_id, title, author, rating, cover_url
        FROM reading_log
        WHERE year = ?
        ORDER BY created_ts, book_id
    `
	rows, err := s.db.Query(query, year)
	if err != nil {
		log.Error("Failed to query reading log", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.BookSnapshot)
	for rows.Next() {
		var month string
		var b model.BookSnapshot
		if err := rows.Scan(&month, &b.ID, &b.Title, &b.Author, &b.Rating, &b.CoverURL); err != nil {
			log.Error("Failed to scan reading log entry", zap.Error(err))
			return nil, err
		}
		result[month] = append(result[month], b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for month, books := range result {
		for i := range books {
			live, err := s.GetBook(&model.FindBook{ID: &books[i].ID})
			if err != nil {
				return nil, err
			}
			if live != nil && live.Rating != 0 {
				books[i].Rating = live.Rating
			}
		}
		result[month] = books
	}
	return result, nil
}

// AddBooksToMonthLegacy is the flat per-month store: one entry per month
// name across all years. Kept independently queryable because older
// records exist only in this shape. Same union-merge semantics as the
// year-nested store.
func (s *Store) AddBooksToMonthLegacy(month string, year int, books []model.BookSnapshot) (*model.MonthlyLog, error) {
	if month == "" {
		return nil, errors.Wrap(ErrValidation, "month is required")
	}

	s.dbLock.Lock()
	tx, err := s.db.Begin()
	if err != nil {
		s.dbLock.Unlock()
		return nil, err
	}

	stmt := `
        INSERT INTO monthly_log (month, year, book_id, title, author, rating, cover_url)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(month, book_id) DO NOTHING
    `
	for _, book := range books {
		if book.ID == "" {
			tx.Rollback()
			s.dbLock.Unlock()
			return nil, errors.Wrap(ErrValidation, "book id is required")
		}
		if _, err := tx.Exec(stmt, month, year, book.ID, book.Title, book.Author, book.Rating, book.CoverURL); err != nil {
			tx.Rollback()
			s.dbLock.Unlock()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.dbLock.Unlock()
		return nil, err
	}
	s.dbLock.Unlock()

	return s.GetMonthLegacy(month)
}

// GetMonthLegacy returns an empty log rather than ErrNotFound for an
// unknown month, matching what callers of the legacy store expect.
func (s *Store) GetMonthLegacy(month string) (*model.MonthlyLog, error) {
	query := `
        SELECT year, book_id, title, author, rating, cover_url
        FROM monthly_log
        WHERE month = ?
        ORDER BY created_ts, book_id
    `
	rows, err := s.db.Query(query, month)
	if err != nil {
		log.Error("Failed to query monthly log", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := &model.MonthlyLog{Month: month, Books: []model.BookSnapshot{}}
	for rows.Next() {
		var b model.BookSnapshot
		if err := rows.Scan(&result.Year, &b.ID, &b.Title, &b.Author, &b.Rating, &b.CoverURL); err != nil {
			log.Error("Failed to scan monthly log entry", zap.Error(err))
			return nil, err
		}
		result.Books = append(result.Books, b)
	}
	return result, rows.Err()
}

func (s *Store) RemoveBookFromMonthLegacy(month string, year int, bookID string) error {
	stmt := `DELETE FROM monthly_log WHERE month = ? AND year = ? AND book_id = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	res, err := s.db.Exec(stmt, month, year, bookID)
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

func (s *Store) listLogBooks(query string, args ...any) ([]model.BookSnapshot, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query log books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]model.BookSnapshot, 0)
	for rows.Next() {
		var b model.BookSnapshot
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Rating, &b.CoverURL); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
