package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ymatsux/gyakuaki/backend/internal/config"
	"github.com/ymatsux/gyakuaki/backend/internal/handler"
	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
	hintService "github.com/ymatsux/gyakuaki/backend/internal/service/hint"
	"github.com/ymatsux/gyakuaki/backend/internal/service/oracle"
	questionService "github.com/ymatsux/gyakuaki/backend/internal/service/question"
	sessionService "github.com/ymatsux/gyakuaki/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	log.Printf("dataset loaded: %d persons, %d attributes", len(store.Persons()), len(store.Attributes()))

	sessions := sessionService.NewService()
	sessions.StartSweeper(ctx, sessionService.SweepInterval)

	// The oracle is optional; without a credential the AI routes answer 503
	// per request and the deterministic game still works.
	var oracleClient oracle.Client
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
		} else if client, err := oracle.NewArkClient(ctx, chatModel, cfg.AI.Timeout); err != nil {
			log.Printf("warning: failed to initialize oracle: %v", err)
		} else {
			oracleClient = client
			log.Println("oracle initialized successfully")
		}
	} else {
		log.Println("ark credential not configured, AI routes will answer 503")
	}

	questions := questionService.NewService(oracleClient, sessions, store)
	hints := hintService.NewService(oracleClient)

	router := handler.NewRouter(store, sessions, questions, hints)

	startServer(ctx, cfg.Server, router)
}

// openStore picks the dataset source: SQLite file, JSON snapshot, or the
// built-in seed.
func openStore(ctx context.Context, cfg config.StoreConfig) (person.Store, error) {
	if cfg.DatabasePath != "" {
		log.Printf("loading dataset from database %s", cfg.DatabasePath)
		return person.OpenSQLiteStore(ctx, cfg.DatabasePath)
	}

	if cfg.SnapshotPath != "" {
		log.Printf("loading dataset from snapshot %s", cfg.SnapshotPath)
		snap, err := person.LoadSnapshot(cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		return person.NewMemoryStore(snap), nil
	}

	log.Println("no dataset configured, using built-in seed")
	return person.NewMemoryStore(person.Seed()), nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("gyakuaki backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
