/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the invoicing server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load optional .env, parse command-line flags
  2. Open the snapshot backend (SQLite or JSON file)
  3. Hydrate the store (runs schema migration if needed)
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION:
  -port    HTTP server port (default: 8080, or PORT env)
  -db      SQLite snapshot path (default: invoice.db, or INVOICE_DB env)
           Use ":memory:" for an in-memory database
  -data    JSON file snapshot path; when set, used instead of -db
           (INVOICE_DATA env)
  LOG_FORMAT=json switches logrus to the JSON formatter

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Final state flush, close the backend
  4. Exit

EXAMPLES:
  # Run with a SQLite snapshot
  ./server -db="./data/invoice.db"

  # Run with a plain JSON file snapshot
  ./server -data="./data/invoice.json"

  # Run ephemeral
  ./server -db=":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - store/store.go: State container and persistence lifecycle
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/felixlvh/invoice/api"
	"github.com/felixlvh/invoice/store"
	"github.com/felixlvh/invoice/store/file"
	"github.com/felixlvh/invoice/store/sqlite"
)

func main() {
	// .env is optional; flags override env.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("INVOICE_DB", "invoice.db"), "SQLite snapshot path")
	dataPath := flag.String("data", envString("INVOICE_DATA", ""), "JSON file snapshot path (overrides -db)")
	flag.Parse()

	log := logrus.New()
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Backend selection
	var backend store.Backend
	var err error
	if *dataPath != "" {
		backend, err = file.Open(*dataPath)
	} else {
		backend, err = sqlite.Open(*dbPath)
	}
	if err != nil {
		log.WithError(err).Fatal("failed to open snapshot backend")
	}

	st, err := store.Open(context.Background(), backend, log)
	if err != nil {
		log.WithError(err).Fatal("failed to hydrate store")
	}
	defer st.Close()

	handler := api.NewHandler(st)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
