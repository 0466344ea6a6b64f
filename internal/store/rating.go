package store

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

// ValidRating reports whether r is within [0, 5] on a half-step boundary.
func ValidRating(r float64) bool {
	if r < 0 || r > 5 {
		return false
	}
	return math.Mod(r*2, 1) == 0
}

// UpsertRating writes the standalone rating record and the denormalized
// fields on the book row in the same transaction. Writing one without the
// other would let the two copies drift.
func (s *Store) UpsertRating(rating *model.Rating) (*model.Rating, error) {
	if rating.BookID == "" {
		return nil, errors.Wrap(ErrValidation, "book id is required")
	}
	if !ValidRating(rating.Rating) {
		return nil, errors.Wrapf(ErrValidation, "rating %v must be between 0 and 5 in half steps", rating.Rating)
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE books SET rating = ?, review = ? WHERE id = ?`,
		rating.Rating, rating.Review, rating.BookID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.Wrap(ErrNotFound, "book not found")
	}

	stmt := `
        INSERT INTO ratings (book_id, rating, review)
        VALUES (?, ?, ?)
        ON CONFLICT(book_id) DO UPDATE
        SET
            rating=EXCLUDED.rating,
            review=EXCLUDED.review,
            updated_ts=strftime('%s', 'now')
        RETURNING book_id, rating, review, created_ts, updated_ts
    `
	var r model.Rating
	if err := tx.QueryRow(stmt, rating.BookID, rating.Rating, rating.Review).Scan(
		&r.BookID, &r.Rating, &r.Review, &r.CreatedTs, &r.UpdatedTs,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.bookCache.Delete(rating.BookID)
	return &r, nil
}

func (s *Store) GetRating(bookID string) (*model.Rating, error) {
	query := `
        SELECT book_id, rating, review, created_ts, updated_ts
        FROM ratings
        WHERE book_id = ?
    `
	var r model.Rating
	if err := s.db.QueryRow(query, bookID).Scan(
		&r.BookID, &r.Rating, &r.Review, &r.CreatedTs, &r.UpdatedTs,
	); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListRatings() ([]*model.Rating, error) {
	query := `
        SELECT book_id, rating, review, created_ts, updated_ts
        FROM ratings
        ORDER BY updated_ts DESC
    `
	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query ratings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Rating, 0)
	for rows.Next() {
		var r model.Rating
		if err := rows.Scan(&r.BookID, &r.Rating, &r.Review, &r.CreatedTs, &r.UpdatedTs); err != nil {
			log.Error("Failed to scan rating", zap.Error(err))
			return nil, err
		}
		list = append(list, &r)
	}
	return list, rows.Err()
}
