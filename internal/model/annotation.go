package model

// Rectangle is a page-local highlight box. Coordinates are captured once at
// selection time and never renormalized, they are only meaningful for the
// page they were captured on.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Quote is a highlighted passage with its overlay position.
type Quote struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Text      string    `json:"text"`
	Note      string    `json:"note"`
	PageIndex int       `json:"page_index"`
	Position  Rectangle `json:"position"`
	Color     string    `json:"color"`
	CreatedTs int64     `json:"created_ts"`
}

type FindQuote struct {
	ID     *string `json:"id"`
	BookID *string `json:"book_id"`
}

// VocabEntry is a saved word/definition pair. (Word, BookID) is unique.
type VocabEntry struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	Word      string `json:"word"`
	Meaning   string `json:"meaning"`
	CreatedTs int64  `json:"created_ts"`
}

type FindVocab struct {
	ID     *string `json:"id"`
	BookID *string `json:"book_id"`
	Word   *string `json:"word"`
}

// Bookmark is a named page marker. Label defaults to "Page N".
type Bookmark struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	PageIndex int    `json:"page_index"`
	Label     string `json:"label"`
	CreatedTs int64  `json:"created_ts"`
}

type FindBookmark struct {
	ID     *string `json:"id"`
	BookID *string `json:"book_id"`
}

// Rating duplicates the rating/review fields held on Book. The two copies
// are always written in the same transaction.
type Rating struct {
	BookID    string  `json:"book_id"`
	Rating    float64 `json:"rating"`
	Review    string  `json:"review"`
	CreatedTs int64   `json:"created_ts"`
	UpdatedTs int64   `json:"updated_ts"`
}
