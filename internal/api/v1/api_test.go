package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/Risriddle/Librarize/internal/api/v1"
	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/dict"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/shelf"
	"github.com/Risriddle/Librarize/internal/storage"
	"github.com/Risriddle/Librarize/internal/store"
	"github.com/Risriddle/Librarize/internal/store/db"
	"github.com/Risriddle/Librarize/internal/worker"
)

func init() {
	config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	d, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.Migrate(context.Background()))

	s := store.NewStore(d.DB)
	blobs := storage.NewLocalStorage(t.TempDir())
	dictClient := dict.NewClient("http://127.0.0.1:0")
	tracker := shelf.NewTracker(t.TempDir())
	uploadPool := worker.NewUploadPool(s, blobs, 1)

	router := mux.NewRouter()
	v1.Server(router, s, blobs, dictClient, tracker, uploadPool)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestQuoteRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/quotes", map[string]interface{}{
		"book_id": "bk1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/quotes", map[string]interface{}{
		"book_id":    "bk1",
		"text":       "So it goes.",
		"page_index": 3,
		"position":   map[string]float64{"x": 20, "y": 50, "width": 120, "height": 18},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID    string `json:"id"`
		Color string `json:"color"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "#FFEB3B", created.Color)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/quotes?bookId=bk1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quotes []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quotes))
	resp.Body.Close()
	assert.Len(t, quotes, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/quotes/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/quotes/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestVocabDuplicateIsConflict(t *testing.T) {
	srv := newTestServer(t)

	word := map[string]interface{}{
		"book_id": "bk1",
		"word":    "lambent",
		"meaning": "flickering gently",
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/vocab", word)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/vocab", word)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestRatingValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/ratings/bk1", map[string]interface{}{
		"rating": 3.7,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Valid step but no such book.
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/ratings/bk1", map[string]interface{}{
		"rating": 3.5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestShelfRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/shelf/bk1", map[string]interface{}{
		"action": "toggle",
		"set":    "reading",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state shelf.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	resp.Body.Close()
	assert.Equal(t, []string{"bk1"}, state.Reading)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/shelf/bk1", map[string]interface{}{
		"action": "toggle",
		"set":    "nonsense",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/shelf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	resp.Body.Close()
	assert.Equal(t, []string{"bk1"}, state.Reading)
}

func TestMonthMergeRoutes(t *testing.T) {
	srv := newTestServer(t)

	add := func(ids ...string) *http.Response {
		books := make([]map[string]interface{}, 0, len(ids))
		for _, id := range ids {
			books = append(books, map[string]interface{}{
				"id":    id,
				"title": "Title " + id,
			})
		}
		return doJSON(t, http.MethodPost, srv.URL+"/api/v1/logs/2026/August", map[string]interface{}{
			"books": books,
		})
	}

	resp := add("a", "b")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Re-adding a logged book is a union, not a duplicate.
	resp = add("b", "c")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var month struct {
		Books []struct {
			ID string `json:"id"`
		} `json:"books"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&month))
	resp.Body.Close()
	assert.Len(t, month.Books, 3)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/logs/2026/August/a", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/logs/2026/August/%s", srv.URL, "nope"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
