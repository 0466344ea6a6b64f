package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

func (h *Handler) listRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.store.ListRatings()
	if err != nil {
		log.Error("Error listing ratings", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, ratings)
}

func (h *Handler) getRating(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "bookId")

	rating, err := h.store.GetRating(bookID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, rating)
}

// upsertRating writes the rating record and the book's denormalized copy
// in one transaction.
func (h *Handler) upsertRating(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteStringParam(r, "bookId")

	var body upsertRatingRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	rating, err := h.store.UpsertRating(&model.Rating{
		BookID: bookID,
		Rating: body.Rating,
		Review: body.Review,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, rating)
}
