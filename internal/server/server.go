package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	v1 "github.com/Risriddle/Librarize/internal/api/v1"
	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/dict"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/shelf"
	"github.com/Risriddle/Librarize/internal/storage"
	"github.com/Risriddle/Librarize/internal/store"
	"github.com/Risriddle/Librarize/internal/version"
	"github.com/Risriddle/Librarize/internal/worker"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, store *store.Store, blobs storage.BlobStore, dictClient *dict.Client, tracker *shelf.Tracker, uploadPool worker.WorkPool) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, blobs, dictClient, tracker, uploadPool),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

func setupHandler(store *store.Store, blobs storage.BlobStore, dictClient *dict.Client, tracker *shelf.Tracker, uploadPool worker.WorkPool) http.Handler {
	router := mux.NewRouter()

	v1.Server(router, store, blobs, dictClient, tracker, uploadPool)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
