package v1

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Risriddle/Librarize/internal/dict"
	"github.com/Risriddle/Librarize/internal/http/response"
	"github.com/Risriddle/Librarize/internal/middleware"
	"github.com/Risriddle/Librarize/internal/shelf"
	"github.com/Risriddle/Librarize/internal/storage"
	"github.com/Risriddle/Librarize/internal/store"
	"github.com/Risriddle/Librarize/internal/worker"
)

type Handler struct {
	store      *store.Store
	blobs      storage.BlobStore
	dict       *dict.Client
	shelf      *shelf.Tracker
	uploadPool worker.WorkPool
	router     *mux.Router
}

func Server(router *mux.Router, store *store.Store, blobs storage.BlobStore, dictClient *dict.Client, tracker *shelf.Tracker, uploadPool worker.WorkPool) {
	handler := &Handler{
		store:      store,
		blobs:      blobs,
		dict:       dictClient,
		shelf:      tracker,
		uploadPool: uploadPool,
		router:     router,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Use(middleware.RateLimit)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.uploadBook).Methods(http.MethodPost)
	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.updateBook).Methods(http.MethodPut)
	sr.HandleFunc("/books/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/file", handler.serveBookFile).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/position", handler.getPosition).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}/position", handler.setPosition).Methods(http.MethodPut)

	sr.HandleFunc("/quotes", handler.listQuotes).Methods(http.MethodGet)
	sr.HandleFunc("/quotes", handler.createQuote).Methods(http.MethodPost)
	sr.HandleFunc("/quotes/{id}", handler.deleteQuote).Methods(http.MethodDelete)

	sr.HandleFunc("/vocab", handler.listVocab).Methods(http.MethodGet)
	sr.HandleFunc("/vocab", handler.createVocab).Methods(http.MethodPost)
	sr.HandleFunc("/vocab/lookup", handler.lookupWord).Methods(http.MethodPost)
	sr.HandleFunc("/vocab/{id}", handler.deleteVocab).Methods(http.MethodDelete)

	sr.HandleFunc("/bookmarks", handler.listBookmarks).Methods(http.MethodGet)
	sr.HandleFunc("/bookmarks", handler.createBookmark).Methods(http.MethodPost)
	sr.HandleFunc("/bookmarks/{id}", handler.deleteBookmark).Methods(http.MethodDelete)

	sr.HandleFunc("/ratings", handler.listRatings).Methods(http.MethodGet)
	sr.HandleFunc("/ratings/{bookId}", handler.getRating).Methods(http.MethodGet)
	sr.HandleFunc("/ratings/{bookId}", handler.upsertRating).Methods(http.MethodPut)

	sr.HandleFunc("/logs/{year}", handler.getYearLog).Methods(http.MethodGet)
	sr.HandleFunc("/logs/{year}/{month}", handler.addBooksToMonth).Methods(http.MethodPost)
	sr.HandleFunc("/logs/{year}/{month}/{bookId}", handler.removeBookFromMonth).Methods(http.MethodDelete)

	sr.HandleFunc("/monthly", handler.addBooksToMonthLegacy).Methods(http.MethodPost)
	sr.HandleFunc("/monthly/{month}", handler.getMonthLegacy).Methods(http.MethodGet)
	sr.HandleFunc("/monthly/{month}/{bookId}", handler.removeBookFromMonthLegacy).Methods(http.MethodDelete)

	sr.HandleFunc("/shelf", handler.getShelf).Methods(http.MethodGet)
	sr.HandleFunc("/shelf/{bookId}", handler.applyShelfAction).Methods(http.MethodPost)

	sr.HandleFunc("/jobs", handler.listJobs).Methods(http.MethodGet)
}

// storeError maps the store's sentinel errors onto HTTP statuses.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(w, r)
	case errors.Is(err, store.ErrConflict):
		response.Conflict(w, r, err)
	case errors.Is(err, store.ErrValidation):
		response.BadRequest(w, r, err)
	default:
		response.ServerError(w, r, err)
	}
}
