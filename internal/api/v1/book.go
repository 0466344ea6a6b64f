package v1

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/http/request"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
	"github.com/Risriddle/Librarize/internal/shelf"
)

// uploadBook accepts one multipart PDF and queues it for the upload pool.
// The response carries the pending job so the client can poll /jobs.
func (h *Handler) uploadBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Opts.MaxUploadSize << 20); err != nil {
		log.Error("Max upload size exceeded", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) != 1 {
		response.BadRequest(w, r, fmt.Errorf("exactly one file is required"))
		return
	}
	file := files[0]

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		log.Warn("Unsupported file type", zap.String("file_name", file.Filename))
		response.BadRequest(w, r, fmt.Errorf("unsupported file type %q, only PDF is accepted", ext))
		return
	}

	job := model.Job{
		FileName: filepath.Base(file.Filename),
		Title:    r.FormValue("title"),
		Author:   r.FormValue("author"),
		Status:   model.JobStatusPending,
		Item:     file,
	}

	newJob, err := h.store.AddJob(job)
	if err != nil {
		log.Error("Failed to add job", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	go h.uploadPool.Push(*newJob)

	response.Accepted(w, r, newJob)
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{}
	if title := request.QueryStringParam(r, "title", ""); title != "" {
		find.Title = &title
	}
	if author := request.QueryStringParam(r, "author", ""); author != "" {
		find.Author = &author
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &id})
	if err != nil {
		storeError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	var body updateBookRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if body.Title == nil && body.Author == nil {
		response.BadRequest(w, r, fmt.Errorf("nothing to update"))
		return
	}

	if body.Title != nil {
		existing, err := h.store.GetBook(&model.FindBook{Title: body.Title})
		if err == nil && existing != nil && existing.ID != id {
			response.Conflict(w, r, fmt.Errorf("title %q is already taken", *body.Title))
			return
		}
	}

	book, err := h.store.UpdateBook(&model.UpdateBook{
		ID:     id,
		Title:  body.Title,
		Author: body.Author,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

// deleteBook removes the book and everything hanging off it. The records
// go first, in one transaction; the blob goes last, best effort.
func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	book, err := h.store.RemoveBook(id)
	if err != nil {
		storeError(w, r, err)
		return
	}

	if book.FileKey != "" {
		if err := h.blobs.Delete(book.FileKey); err != nil {
			log.Warn("Orphaned blob left behind",
				zap.String("book_id", id),
				zap.String("key", book.FileKey),
				zap.Error(err))
		}
	}

	if _, err := h.shelf.Apply(shelf.Action{Kind: shelf.ActionForget, BookID: id}); err != nil {
		log.Warn("Failed to drop book from shelves", zap.String("book_id", id), zap.Error(err))
	}

	log.Debug("Book deleted", zap.String("book_id", id), zap.String("title", book.Title))
	response.NoContent(w, r)
}

func (h *Handler) serveBookFile(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	book, err := h.store.GetBook(&model.FindBook{ID: &id})
	if err != nil {
		storeError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	f, err := h.blobs.Open(book.FileKey)
	if err != nil {
		log.Error("Error opening blob",
			zap.String("book_id", id),
			zap.String("key", book.FileKey),
			zap.Error(err))
		response.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", book.FileName))
	http.ServeContent(w, r, book.FileName, time.Unix(book.UploadedTs, 0), f)
}

func (h *Handler) getPosition(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	position, err := h.store.GetPosition(id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, position)
}

func (h *Handler) setPosition(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	var body setPositionRequest
	if err := decodeAndValidate(r, &body); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	position := &model.ReadingPosition{BookID: id, PageIndex: body.PageIndex}
	if err := h.store.SetPosition(position); err != nil {
		storeError(w, r, err)
		return
	}
	response.OK(w, r, position)
}
