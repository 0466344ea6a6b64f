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

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.bookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.bookCache.Store(book.ID, book)
	return book, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "title = ?"), append(args, *v)
	}
	if v := find.Author; v != nil {
		where, args = append(where, "author = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            file_name,
            file_key,
            title,
            author,
            cover_url,
            rating,
            review,
            uploaded_ts
        FROM books
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY uploaded_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.FileName,
			&book.FileKey,
			&book.Title,
			&book.Author,
			&book.CoverURL,
			&book.Rating,
			&book.Review,
			&book.UploadedTs,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}
	return list, rows.Err()
}

// ResolveUniqueTitle probes for a free title, appending " (n)" until no
// book carries it.
func (s *Store) ResolveUniqueTitle(base string) (string, error) {
	title := base
	for count := 1; ; count++ {
		existing, err := s.GetBook(&model.FindBook{Title: &title})
		if err != nil {
			return "", err
		}
		if existing == nil {
			return title, nil
		}
		title = fmt.Sprintf("%s (%d)", base, count)
	}
}

func (s *Store) AddBook(book *model.Book) (*model.Book, error) {
	if book.Title == "" || book.FileKey == "" {
		return nil, errors.Wrap(ErrValidation, "title and file key are required")
	}
	if book.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		book.ID = id
	}

	stmt := `
        INSERT INTO books (id, file_name, file_key, title, author, cover_url, rating, review)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, file_name, file_key, title, author, cover_url, rating, review, uploaded_ts
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var b model.Book
	if err := tx.QueryRow(stmt,
		book.ID, book.FileName, book.FileKey, book.Title, book.Author, book.CoverURL, book.Rating, book.Review,
	).Scan(
		&b.ID, &b.FileName, &b.FileKey, &b.Title, &b.Author, &b.CoverURL, &b.Rating, &b.Review, &b.UploadedTs,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.bookCache.Store(b.ID, &b)
	return &b, nil
}

func (s *Store) UpdateBook(update *model.UpdateBook) (*model.Book, error) {
	set, args := []string{}, []any{}
	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Author; v != nil {
		set, args = append(set, "author = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.Wrap(ErrValidation, "nothing to update")
	}
	args = append(args, update.ID)

	stmt := `
        UPDATE books SET ` + strings.Join(set, ", ") + `
        WHERE id = ?
        RETURNING id, file_name, file_key, title, author, cover_url, rating, review, uploaded_ts
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var b model.Book
	if err := tx.QueryRow(stmt, args...).Scan(
		&b.ID, &b.FileName, &b.FileKey, &b.Title, &b.Author, &b.CoverURL, &b.Rating, &b.Review, &b.UploadedTs,
	); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.bookCache.Store(b.ID, &b)
	return &b, nil
}

// RemoveBook deletes the book row and every dependent record in one
// transaction and returns the removed book. The blob delete happens at the
// caller, after the metadata is gone, so a storage failure leaves
// recoverable metadata on retry rather than a dangling blob reference.
func (s *Store) RemoveBook(id string) (*model.Book, error) {
	book, err := s.GetBook(&model.FindBook{ID: &id})
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Dependent deletes are unconditional so a retried cascade that
	// already removed some kinds still succeeds.
	for _, stmt := range []string{
		`DELETE FROM quotes WHERE book_id = ?`,
		`DELETE FROM vocab WHERE book_id = ?`,
		`DELETE FROM bookmarks WHERE book_id = ?`,
		`DELETE FROM ratings WHERE book_id = ?`,
		`DELETE FROM reading_positions WHERE book_id = ?`,
		`DELETE FROM books WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.bookCache.Delete(id)
	return book, nil
}
