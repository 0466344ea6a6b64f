package model

// BookSnapshot is the denormalized book entry carried inside a reading log.
// Rating is refreshed from the live book record at read time but the stored
// snapshot is never rewritten.
type BookSnapshot struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Rating   float64 `json:"rating"`
	CoverURL string  `json:"cover_url"`
}

// MonthLog is one month's worth of logged books inside a year.
type MonthLog struct {
	Month string         `json:"month"`
	Books []BookSnapshot `json:"books"`
}

// YearLog nests months under a year. Book ids are unique within a month.
type YearLog struct {
	Year   int        `json:"year"`
	Months []MonthLog `json:"months"`
}

// MonthlyLog is the legacy flat store, keyed by month name only. Older
// records may exist only in this shape, so it stays queryable alongside
// the year-nested model.
type MonthlyLog struct {
	Month string         `json:"month"`
	Year  int            `json:"year"`
	Books []BookSnapshot `json:"books"`
}
