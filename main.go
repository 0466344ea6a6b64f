package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/dict"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/server"
	"github.com/Risriddle/Librarize/internal/shelf"
	"github.com/Risriddle/Librarize/internal/storage"
	"github.com/Risriddle/Librarize/internal/store"
	"github.com/Risriddle/Librarize/internal/store/db"
	"github.com/Risriddle/Librarize/internal/worker"
)

const (
	greetingBanner = `
██      ██ ██████  ██████   █████  ██████  ██ ███████ ███████
██      ██ ██   ██ ██   ██ ██   ██ ██   ██ ██    ███  ██
██      ██ ██████  ██████  ███████ ██████  ██   ███   █████
██      ██ ██   ██ ██   ██ ██   ██ ██   ██ ██  ███    ██
███████ ██ ██████  ██   ██ ██   ██ ██   ██ ██ ███████ ███████
`
)

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:   "librarize",
		Short: "Librarize is a personal reading tracker",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer d.Close()
			if err := d.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(d.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			blobs := storage.NewLocalStorage(config.Opts.Data)
			dictClient := dict.NewClient(config.Opts.DictionaryAPI)
			tracker := shelf.NewTracker(config.Opts.Data)
			uploadPool := worker.NewUploadPool(s, blobs, config.Opts.WorkerPoolSize)

			srv, err := server.StartServer(ctx, s, blobs, dictClient, tracker, uploadPool)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			fmt.Print(greetingBanner)
			log.Info("Server started",
				zap.String("host", config.Opts.Host),
				zap.Int("port", config.Opts.Port),
				zap.String("data", config.Opts.Data))

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
			log.Info("Server stopped")
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")

	cobra.OnInitialize(func() {
		config.GetDefaultOptions()
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				fmt.Fprintln(os.Stderr, "Error parsing config file:", err)
				os.Exit(1)
			}
		}

		// Flags override the config file.
		if host != "" {
			config.Opts.Host = host
		}
		if port != 0 {
			config.Opts.Port = port
		}
		if data != "" {
			config.Opts.Data = data
		}

		if _, err := config.GetConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "Error resolving data directory:", err)
			os.Exit(1)
		}

		log.Logger = log.NewLogger()
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if log.Logger != nil {
		defer log.Logger.Sync()
	}
}
