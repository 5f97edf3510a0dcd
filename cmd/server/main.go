package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/verilens/verilens/internal/analysis"
	"github.com/verilens/verilens/internal/config"
	"github.com/verilens/verilens/internal/gcp"
	"github.com/verilens/verilens/internal/notify"
	"github.com/verilens/verilens/internal/server"
	"github.com/verilens/verilens/internal/store"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("Server exited", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		return err
	}
	defer firestoreClient.Close()

	invoker, err := gcp.NewGeminiInvoker(ctx, cfg.ProjectID, cfg.VertexAIRegion, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer invoker.Close()

	mediaStore, err := gcp.NewMediaStore(ctx, cfg.MediaBucket)
	if err != nil {
		return err
	}
	defer mediaStore.Close()

	notifier, err := notify.NewNotifier(cfg.EventSinkURL, log)
	if err != nil {
		return err
	}

	srv := server.New(
		cfg,
		log,
		store.NewUserStore(firestoreClient),
		store.NewAnalysisStore(firestoreClient),
		analysis.NewAnalyzer(invoker, log),
		mediaStore,
		notifier,
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening", zap.String("port", cfg.Port), zap.String("model", cfg.GeminiModel))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		log.Info("Shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
