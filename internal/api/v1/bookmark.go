package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
)

// listBookmarks returns all bookmarks, or one book's when bookId is given.
func (h *Handler) listBookmarks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBookmark{}
	if bookID := request.QueryStringParam(r, "bookId", ""); bookID != "" {
		find.BookID = &bookID
	}

	bookmarks, err := h.store.ListBookmarks(find)
	if err != nil {
		log.Error("Error listing bookmarks", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, bookmarks)
}

func (h *Handler) createBookmark(w http.ResponseWriter, r *http.Request) {
	var body createBookmarkRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	bookmark, err := h.store.AddBookmark(&model.Bookmark{
		BookID:    body.BookID,
		PageIndex: body.PageIndex,
		Label:     body.Label,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, r, bookmark)
}

func (h *Handler) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	if err := h.store.RemoveBookmark(id); err != nil {
		storeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
