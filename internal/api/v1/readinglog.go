package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
)

// getYearLog returns the year's months with their book snapshots. Each
// snapshot's rating reflects the live book record at read time.
func (h *Handler) getYearLog(w http.ResponseWriter, r *http.Request) {
	year := request.RouteIntParam(r, "year")
	if year == 0 {
		response.BadRequest(w, r, fmt.Errorf("invalid year"))
		return
	}

	months, err := h.store.GetYear(year)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, months)
}

// addBooksToMonth merges books into a month as a set union keyed by book
// id. Re-adding a logged book is a no-op, not an error.
func (h *Handler) addBooksToMonth(w http.ResponseWriter, r *http.Request) {
	year := request.RouteIntParam(r, "year")
	month := request.RouteStringParam(r, "month")

	var body addLogBooksRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	monthLog, err := h.store.AddBooksToMonth(year, month, body.Books)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, monthLog)
}

func (h *Handler) removeBookFromMonth(w http.ResponseWriter, r *http.Request) {
	year := request.RouteIntParam(r, "year")
	month := request.RouteStringParam(r, "month")
	bookID := request.RouteStringParam(r, "bookId")

	if err := h.store.RemoveBookFromMonth(year, month, bookID); err != nil {
		storeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) addBooksToMonthLegacy(w http.ResponseWriter, r *http.Request) {
	var body addMonthlyLegacyRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	monthLog, err := h.store.AddBooksToMonthLegacy(body.Month, body.Year, body.Books)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, monthLog)
}

// getMonthLegacy reads the flat month store. An unlogged month answers
// with an empty book list rather than a 404.
func (h *Handler) getMonthLegacy(w http.ResponseWriter, r *http.Request) {
	month := request.RouteStringParam(r, "month")

	monthLog, err := h.store.GetMonthLegacy(month)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, monthLog)
}

func (h *Handler) removeBookFromMonthLegacy(w http.ResponseWriter, r *http.Request) {
	month := request.RouteStringParam(r, "month")
	bookID := request.RouteStringParam(r, "bookId")

	year, err := strconv.Atoi(request.QueryStringParam(r, "year", ""))
	if err != nil {
		response.BadRequest(w, r, fmt.Errorf("year query parameter is required"))
		return
	}

	if err := h.store.RemoveBookFromMonthLegacy(month, year, bookID); err != nil {
		storeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
