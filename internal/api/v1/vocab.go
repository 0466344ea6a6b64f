package v1

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/dict"
	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

const meaningUnavailable = "definition unavailable"

func (h *Handler) listVocab(w http.ResponseWriter, r *http.Request) {
	find := &model.FindVocab{}
	if bookID := request.QueryStringParam(r, "bookId", ""); bookID != "" {
		find.BookID = &bookID
	}

	entries, err := h.store.ListVocab(find)
	if err != nil {
		log.Error("Error listing vocab", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, entries)
}

// createVocab saves a word. When no meaning is supplied the dictionary is
// consulted best effort; a failed lookup never blocks the save.
func (h *Handler) createVocab(w http.ResponseWriter, r *http.Request) {
	var body createVocabRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	meaning := body.Meaning
	if meaning == "" {
		if def, err := h.dict.Lookup(r.Context(), body.Word); err == nil {
			meaning = def.Meaning
		} else {
			log.Debug("Dictionary lookup failed", zap.String("word", body.Word), zap.Error(err))
			meaning = meaningUnavailable
		}
	}

	entry, err := h.store.AddVocab(&model.VocabEntry{
		BookID:  body.BookID,
		Word:    body.Word,
		Meaning: meaning,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, r, entry)
}

// lookupWord proxies a dictionary lookup without saving anything.
func (h *Handler) lookupWord(w http.ResponseWriter, r *http.Request) {
	var body lookupWordRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	def, err := h.dict.Lookup(r.Context(), body.Word)
	if err != nil {
		if errors.Is(err, dict.ErrNoDefinition) {
			response.NotFound(w, r)
			return
		}
		response.BadGateway(w, r, err)
		return
	}
	response.OK(w, r, def)
}

func (h *Handler) deleteVocab(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	if err := h.store.RemoveVocab(id); err != nil {
		storeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
