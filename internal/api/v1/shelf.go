package v1

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/shelf"
)

func (h *Handler) getShelf(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, h.shelf.State())
}

// applyShelfAction runs one action through the shelf reducer and returns
// the resulting state.
func (h *Handler) applyShelfAction(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "bookId")

	var body shelfActionRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	action := shelf.Action{
		Kind:   shelf.ActionKind(body.Action),
		Set:    shelf.Set(body.Set),
		BookID: bookID,
	}
	if action.Kind == shelf.ActionToggle && !action.Set.Valid() {
		response.BadRequest(w, r, fmt.Errorf("unknown shelf %q", body.Set))
		return
	}

	state, err := h.shelf.Apply(action)
	if err != nil {
		log.Error("Error persisting shelf state", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, state)
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListJobs()
	if err != nil {
		log.Error("Error listing jobs", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, jobs)
}
