// Package app wires configuration, storage, services, and transport into a
// running HTTP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (migrations)
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/modulearn/backend/internal/adapter/postgres"
	postrepo "github.com/modulearn/backend/internal/adapter/postgres/post"
	progressrepo "github.com/modulearn/backend/internal/adapter/postgres/progress"
	tokenrepo "github.com/modulearn/backend/internal/adapter/postgres/token"
	userrepo "github.com/modulearn/backend/internal/adapter/postgres/user"
	"github.com/modulearn/backend/internal/adapter/provider/google"
	"github.com/modulearn/backend/internal/auth"
	"github.com/modulearn/backend/internal/config"
	authsvc "github.com/modulearn/backend/internal/service/auth"
	"github.com/modulearn/backend/internal/service/board"
	progresssvc "github.com/modulearn/backend/internal/service/progress"
	"github.com/modulearn/backend/internal/transport/middleware"
	"github.com/modulearn/backend/internal/transport/rest"
	"github.com/modulearn/backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database (or continues in degraded mode), applies pending migrations,
// wires services and transport, and serves HTTP until the context is
// cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := connectDB(ctx, logger, cfg.Database)
	db := postgres.NewDB(pool)
	defer db.Close()

	users := userrepo.New(db)
	posts := postrepo.New(db)
	progresses := progressrepo.New(db)
	tokens := tokenrepo.New(db)
	txManager := postgres.NewTxManager(db)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	verifier := google.NewVerifier(
		cfg.Auth.GoogleClientID,
		cfg.Auth.GoogleClientSecret,
		cfg.Auth.GoogleRedirectURI,
		logger,
	)

	authService := authsvc.NewService(logger, users, tokens, txManager, verifier, jwtManager, cfg.Auth)
	boardService := board.NewService(logger, posts, users)
	progressService := progresssvc.NewService(logger, progresses, cfg.Curriculum)

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Board:    rest.NewBoardHandler(boardService, logger),
		Progress: rest.NewProgressHandler(progressService, logger),
		Health:   rest.NewHealthHandler(db, BuildVersion()),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// connectDB creates the connection pool and applies migrations. Any failure
// is logged and a nil pool is returned, so the server starts in degraded
// mode instead of crashing: reads answer empty, writes report unavailable.
func connectDB(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) *pgxpool.Pool {
	if cfg.DSN == "" {
		logger.Warn("no database DSN configured, starting in degraded mode")
		return nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		logger.Warn("database unreachable, starting in degraded mode",
			slog.String("error", err.Error()),
		)
		return nil
	}

	if err := migrate(ctx, cfg.DSN); err != nil {
		logger.Warn("migrations failed, starting in degraded mode",
			slog.String("error", err.Error()),
		)
		pool.Close()
		return nil
	}

	return pool
}

// migrate applies pending goose migrations from the embedded filesystem.
// goose requires database/sql, so a separate short-lived connection is used.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if len(results) > 0 {
		slog.Info("applied migrations", slog.Int("count", len(results)))
	}

	return nil
}
