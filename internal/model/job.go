package model

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// Job tracks one book upload through the worker pool. Item carries the
// in-flight multipart file header and is never persisted.
type Job struct {
	ID       int         `json:"id"`
	FileName string      `json:"file_name"`
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	Status   string      `json:"status"`
	Error    string      `json:"error"`
	Item     interface{} `json:"-"`
}
