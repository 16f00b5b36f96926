// Package main is the entry point for the QA helper server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	csvexp "github.com/JSHWJ/QA-helper/internal/adapters/exporter/csv"
	expreg "github.com/JSHWJ/QA-helper/internal/adapters/exporter/registry"
	xlsxexp "github.com/JSHWJ/QA-helper/internal/adapters/exporter/xlsx"
	"github.com/JSHWJ/QA-helper/internal/adapters/db/sqlite"
	"github.com/JSHWJ/QA-helper/internal/adapters/parser/csvtable"
	parreg "github.com/JSHWJ/QA-helper/internal/adapters/parser/registry"
	"github.com/JSHWJ/QA-helper/internal/adapters/parser/xlsxtable"
	"github.com/JSHWJ/QA-helper/internal/adapters/storage"
	"github.com/JSHWJ/QA-helper/internal/api/handlers"
	"github.com/JSHWJ/QA-helper/internal/config"
	"github.com/JSHWJ/QA-helper/internal/pkg/logger"
	"github.com/JSHWJ/QA-helper/internal/usecase/editor"
	"github.com/JSHWJ/QA-helper/internal/usecase/exporter"
	"github.com/JSHWJ/QA-helper/internal/usecase/importer"
	"github.com/JSHWJ/QA-helper/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting QA helper",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage_dir", cfg.Storage.Dir),
	)

	store, err := storage.New(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	db, err := sqlite.Init(filepath.Join(store.Dir(), "qa_helper.db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	parsers := parreg.New()
	parsers.Register(csvtable.New())
	parsers.Register(csvtable.NewTab())
	parsers.Register(xlsxtable.New())
	exporters := expreg.New(csvexp.New(), xlsxexp.New())

	uploads := sqlite.NewUploadRepo(db)
	history := sqlite.NewHistoryRepo(db)
	settings := sqlite.NewSettingsRepo(db)

	server := handlers.NewServer(handlers.ServerDeps{
		Store:    store,
		Importer: importer.New(store, parsers, uploads),
		Editor:   editor.NewService(history),
		Exporter: exporter.NewService(store, exporters, parsers, settings),
		Uploads:  uploads,
		History:  history,
	})
	router := handlers.NewRouter(server, web.Static())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
