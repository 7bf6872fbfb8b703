package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmazurov/fhmp/internal/api"
	"github.com/kmazurov/fhmp/internal/config"
	"github.com/kmazurov/fhmp/internal/db"
	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/repository/sqlite"
	"github.com/kmazurov/fhmp/internal/services"
	"github.com/kmazurov/fhmp/internal/syncer"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("fhmp server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("allow_origin=%s", cfg.AllowOrigin)

	// Storage must open before anything else; failure here is fatal for the
	// session, with no retry.
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	noteRepo := sqlite.NewNoteRepository(database.DB)
	draftRepo := sqlite.NewDraftRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	configRepo := sqlite.NewConfigRepository(database.DB)
	peerRepo := sqlite.NewPeerRepository(database.DB)

	configService := services.NewConfigService(configRepo)
	noteService := services.NewNoteService(noteRepo, draftRepo)
	draftService := services.NewDraftService(draftRepo)
	reviewService := services.NewReviewService(noteRepo, reviewRepo, configService)
	syncService := services.NewSyncService(noteRepo, reviewRepo, configService, syncer.New())
	peerService := services.NewPeerService(peerRepo)

	srv := &api.Server{
		NoteService:   noteService,
		DraftService:  draftService,
		ReviewService: reviewService,
		ConfigService: configService,
		SyncService:   syncService,
		PeerService:   peerService,
		AllowOrigin:   cfg.AllowOrigin,
		Ready: func(r *http.Request) error {
			return database.PingContext(r.Context())
		},
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("fhmp server stopped")
}
