package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
	"github.com/Risriddle/Librarize/internal/store"
	"github.com/Risriddle/Librarize/internal/store/db"
)

func init() {
	config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dir := t.TempDir()
	config.Opts.Data = dir
	config.Opts.DSN = filepath.Join(dir, "librarize.db")

	d, err := db.NewDB(config.Opts.DSN)
	require.NoError(t, err)
	require.NoError(t, d.Migrate(context.Background()))
	t.Cleanup(func() { d.Close() })

	return store.NewStore(d.DB)
}

func addTestBook(t *testing.T, s *store.Store, title string) *model.Book {
	t.Helper()
	book, err := s.AddBook(&model.Book{
		FileName: title + ".pdf",
		FileKey:  "pdfs/test-" + title,
		Title:    title,
		Author:   "Tester",
	})
	require.NoError(t, err)
	return book
}

func TestAddBookRequiresTitle(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddBook(&model.Book{FileKey: "pdfs/x"})
	assert.True(t, errors.Is(err, store.ErrValidation))
}

func TestResolveUniqueTitle(t *testing.T) {
	s := newTestStore(t)
	addTestBook(t, s, "Dune")

	title, err := s.ResolveUniqueTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, "Dune (1)", title)

	book, err := s.AddBook(&model.Book{FileKey: "pdfs/dune2", Title: title})
	require.NoError(t, err)
	assert.Equal(t, "Dune (1)", book.Title)

	title, err = s.ResolveUniqueTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, "Dune (2)", title)

	title, err = s.ResolveUniqueTitle("Emma")
	require.NoError(t, err)
	assert.Equal(t, "Emma", title)
}

func TestQuoteLifecycle(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Hyperion")

	_, err := s.AddQuote(&model.Quote{BookID: book.ID})
	assert.True(t, errors.Is(err, store.ErrValidation), "missing text must be rejected")

	q1, err := s.AddQuote(&model.Quote{
		BookID:    book.ID,
		Text:      "The sea is high today",
		PageIndex: 3,
		Position:  model.Rectangle{X: 20, Y: 50, Width: 50, Height: 20},
		Color:     "#ffef9f",
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, q1.Position.X)

	_, err = s.AddQuote(&model.Quote{BookID: book.ID, Text: "Later words", PageIndex: 9})
	require.NoError(t, err)

	quotes, err := s.ListQuotes(&model.FindQuote{BookID: &book.ID})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	require.NoError(t, s.RemoveQuote(q1.ID))
	err = s.RemoveQuote(q1.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestVocabConflict(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Middlemarch")
	other := addTestBook(t, s, "Emma")

	saved, err := s.AddVocab(&model.VocabEntry{BookID: book.ID, Word: "lambent", Meaning: "softly glowing"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	_, err = s.AddVocab(&model.VocabEntry{BookID: book.ID, Word: "lambent", Meaning: "again"})
	assert.True(t, errors.Is(err, store.ErrConflict), "duplicate (word, book) must conflict")

	// Same word on another book is fine.
	_, err = s.AddVocab(&model.VocabEntry{BookID: other.ID, Word: "lambent", Meaning: "softly glowing"})
	require.NoError(t, err)

	words, err := s.ListVocab(&model.FindVocab{BookID: &book.ID})
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestBookmarkDefaultLabel(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Ulysses")

	b, err := s.AddBookmark(&model.Bookmark{BookID: book.ID, PageIndex: 4})
	require.NoError(t, err)
	assert.Equal(t, "Page 5", b.Label)

	named, err := s.AddBookmark(&model.Bookmark{BookID: book.ID, PageIndex: 10, Label: "The good part"})
	require.NoError(t, err)
	assert.Equal(t, "The good part", named.Label)

	// Omitting the book filter lists every bookmark system-wide.
	all, err := s.ListBookmarks(&model.FindBookmark{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpsertRatingDualWrite(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Persuasion")

	r, err := s.UpsertRating(&model.Rating{BookID: book.ID, Rating: 4.5, Review: "lovely"})
	require.NoError(t, err)
	assert.Equal(t, 4.5, r.Rating)

	got, err := s.GetRating(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Rating)

	fresh, err := s.GetBook(&model.FindBook{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, 4.5, fresh.Rating, "denormalized copy must match")
	assert.Equal(t, "lovely", fresh.Review)
}

func TestUpsertRatingValidation(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Persuasion")

	for _, bad := range []float64{-1, 5.5, 4.3} {
		_, err := s.UpsertRating(&model.Rating{BookID: book.ID, Rating: bad})
		assert.Truef(t, errors.Is(err, store.ErrValidation), "rating %v must be rejected", bad)
	}

	_, err := s.UpsertRating(&model.Rating{BookID: "missing", Rating: 3})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestRemoveBookCascades(t *testing.T) {
	s := newTestStore(t)
	doomed := addTestBook(t, s, "Doomed")
	kept := addTestBook(t, s, "Kept")

	for _, b := range []*model.Book{doomed, kept} {
		_, err := s.AddQuote(&model.Quote{BookID: b.ID, Text: "quote"})
		require.NoError(t, err)
		_, err = s.AddVocab(&model.VocabEntry{BookID: b.ID, Word: "word"})
		require.NoError(t, err)
		_, err = s.AddBookmark(&model.Bookmark{BookID: b.ID, PageIndex: 1})
		require.NoError(t, err)
		_, err = s.UpsertRating(&model.Rating{BookID: b.ID, Rating: 3})
		require.NoError(t, err)
	}

	removed, err := s.RemoveBook(doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, doomed.FileKey, removed.FileKey)

	quotes, err := s.ListQuotes(&model.FindQuote{BookID: &doomed.ID})
	require.NoError(t, err)
	assert.Empty(t, quotes)
	vocab, err := s.ListVocab(&model.FindVocab{BookID: &doomed.ID})
	require.NoError(t, err)
	assert.Empty(t, vocab)
	marks, err := s.ListBookmarks(&model.FindBookmark{BookID: &doomed.ID})
	require.NoError(t, err)
	assert.Empty(t, marks)
	_, err = s.GetRating(doomed.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	// Records of other books are untouched.
	quotes, err = s.ListQuotes(&model.FindQuote{BookID: &kept.ID})
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	_, err = s.GetRating(kept.ID)
	require.NoError(t, err)

	_, err = s.RemoveBook(doomed.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestAddBooksToMonthUnionMerge(t *testing.T) {
	s := newTestStore(t)

	a := model.BookSnapshot{ID: "a", Title: "A"}
	b := model.BookSnapshot{ID: "b", Title: "B"}
	c := model.BookSnapshot{ID: "c", Title: "C"}

	_, err := s.AddBooksToMonth(2025, "March", []model.BookSnapshot{a, b})
	require.NoError(t, err)

	merged, err := s.AddBooksToMonth(2025, "March", []model.BookSnapshot{b, c})
	require.NoError(t, err)

	ids := make([]string, 0, len(merged.Books))
	for _, book := range merged.Books {
		ids = append(ids, book.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids, "merge is a union, each id exactly once")

	// Same month in another year is a separate bucket.
	other, err := s.AddBooksToMonth(2024, "March", []model.BookSnapshot{a})
	require.NoError(t, err)
	assert.Len(t, other.Books, 1)
}

func TestRemoveBookFromMonth(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddBooksToMonth(2025, "March", []model.BookSnapshot{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)

	err = s.RemoveBookFromMonth(2025, "March", "zz")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	err = s.RemoveBookFromMonth(2025, "May", "a")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	err = s.RemoveBookFromMonth(1999, "March", "a")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	require.NoError(t, s.RemoveBookFromMonth(2025, "March", "b"))

	year, err := s.GetYear(2025)
	require.NoError(t, err)
	require.Len(t, year["March"], 1)
	assert.Equal(t, "a", year["March"][0].ID)
}

func TestGetYearOverlaysLiveRating(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Rated Later")

	_, err := s.AddBooksToMonth(2025, "June", []model.BookSnapshot{
		{ID: book.ID, Title: book.Title, Rating: 0},
		{ID: "gone", Title: "Deleted Book", Rating: 2},
	})
	require.NoError(t, err)

	_, err = s.UpsertRating(&model.Rating{BookID: book.ID, Rating: 5})
	require.NoError(t, err)

	year, err := s.GetYear(2025)
	require.NoError(t, err)
	require.Len(t, year["June"], 2)

	byID := map[string]model.BookSnapshot{}
	for _, b := range year["June"] {
		byID[b.ID] = b
	}
	assert.Equal(t, 5.0, byID[book.ID].Rating, "live rating overlays the snapshot")
	assert.Equal(t, 2.0, byID["gone"].Rating, "missing book keeps the snapshot rating")

	// The overlay is read-time only: once the live book is gone the
	// stored snapshot rating shows through again.
	_, err = s.RemoveBook(book.ID)
	require.NoError(t, err)
	year, err = s.GetYear(2025)
	require.NoError(t, err)
	for _, b := range year["June"] {
		if b.ID == book.ID {
			assert.Equal(t, 0.0, b.Rating)
		}
	}
}

func TestLegacyMonthlyLog(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddBooksToMonthLegacy("March", 2025, []model.BookSnapshot{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	merged, err := s.AddBooksToMonthLegacy("March", 2025, []model.BookSnapshot{{ID: "b"}, {ID: "c"}})
	require.NoError(t, err)
	assert.Len(t, merged.Books, 3)
	assert.Equal(t, 2025, merged.Year)

	empty, err := s.GetMonthLegacy("August")
	require.NoError(t, err)
	assert.Empty(t, empty.Books)

	err = s.RemoveBookFromMonthLegacy("March", 2024, "a")
	assert.True(t, errors.Is(err, store.ErrNotFound), "year must match the stored one")
	require.NoError(t, s.RemoveBookFromMonthLegacy("March", 2025, "a"))
}

func TestReadingPosition(t *testing.T) {
	s := newTestStore(t)
	book := addTestBook(t, s, "Placeholder")

	p, err := s.GetPosition(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.PageIndex)

	require.NoError(t, s.SetPosition(&model.ReadingPosition{BookID: book.ID, PageIndex: 42}))
	require.NoError(t, s.SetPosition(&model.ReadingPosition{BookID: book.ID, PageIndex: 43}))

	p, err = s.GetPosition(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 43, p.PageIndex)
}
