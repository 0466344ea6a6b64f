package model //import "github.com/Risriddle/Librarize/internal/model"

// Book is one uploaded PDF plus the review fields denormalized onto it.
type Book struct {
	ID         string  `json:"id"`
	FileName   string  `json:"file_name"`
	FileKey    string  `json:"file_key"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverURL   string  `json:"cover_url"`
	Rating     float64 `json:"rating"`
	Review     string  `json:"review"`
	UploadedTs int64   `json:"uploaded_ts"`
}

type FindBook struct {
	ID     *string `json:"id"`
	Title  *string `json:"title"`
	Author *string `json:"author"`

	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

type UpdateBook struct {
	ID     string  `json:"id"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
}

// ReadingPosition is the last page the reader was on, per book.
type ReadingPosition struct {
	BookID    string `json:"book_id"`
	PageIndex int    `json:"page_index"`
}
