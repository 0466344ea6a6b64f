package worker

import (
	"github.com/Risriddle/Librarize/internal/model"
)

// WorkPool is a queue of background jobs. Push never blocks the caller
// longer than the queue hand-off.
type WorkPool interface {
	Push(job model.Job)
}
