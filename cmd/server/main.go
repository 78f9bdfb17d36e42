package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"starline-salvage/internal/game"
	"starline-salvage/internal/middleware"
	"starline-salvage/internal/server"
	"starline-salvage/internal/session"
	"starline-salvage/internal/shared/config"
	"starline-salvage/internal/shared/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.GlobalConfig); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := slog.With("component", "main")

	store, err := session.Open(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close session store", "error", err)
		}
	}()

	gameService := game.NewService(store, game.ServiceConfig{
		Backend:           cfg.Store.Backend,
		AllowSeedOverride: cfg.Game.AllowSeedOverride,
		IdleTTL:           cfg.Store.IdleTTL,
		SweepInterval:     cfg.Store.SweepInterval,
	}, slog.Default())
	logger.Info("Services initialized", "store", cfg.Store.Backend)

	routes := server.NewRoutes(gameService, cfg.Admin.JWTSecret, slog.Default())
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)
	cors := middleware.NewCORS(cfg.Frontend)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      rateLimiter.Middleware(cors.Middleware(routes.Setup())),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starline Salvage server starting", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return gameService.RunSweeper(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
