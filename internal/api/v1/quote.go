package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
	"github.com/Risriddle/Librarize/internal/overlay"
)

func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	find := &model.FindQuote{}
	if bookID := request.QueryStringParam(r, "bookId", ""); bookID != "" {
		find.BookID = &bookID
	}

	quotes, err := h.store.ListQuotes(find)
	if err != nil {
		log.Error("Error listing quotes", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, quotes)
}

// createQuote stores a highlight. The position rectangle arrives already
// capture-side relative and is stored as-is.
func (h *Handler) createQuote(w http.ResponseWriter, r *http.Request) {
	var body createQuoteRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	color := body.Color
	if color == "" {
		color = overlay.DefaultColor
	}

	quote, err := h.store.AddQuote(&model.Quote{
		BookID:    body.BookID,
		Text:      body.Text,
		Note:      body.Note,
		PageIndex: body.PageIndex,
		Position:  body.Position,
		Color:     color,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, r, quote)
}

func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	if err := h.store.RemoveQuote(id); err != nil {
		storeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
