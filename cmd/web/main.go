package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"pressroom/internal/config"
	"pressroom/internal/handler/web"
	"pressroom/internal/handler/web/requestid"
	"pressroom/internal/handler/web/session"
	pgRepo "pressroom/internal/infra/adapter/persistence/postgres"
	sqliteRepo "pressroom/internal/infra/adapter/persistence/sqlite"
	"pressroom/internal/infra/db"
	"pressroom/internal/infra/storage"
	"pressroom/internal/infra/sweeper"
	"pressroom/internal/observability/logging"
	"pressroom/internal/observability/tracing"
	"pressroom/internal/repository"
	artUC "pressroom/internal/usecase/article"
)

func main() {
	logger := logging.NewLogger()
	if os.Getenv("LOG_FORMAT") == "text" {
		logger = logging.NewTextLogger()
	}
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	articleRepo, userRepo := buildRepos(cfg.Database.Driver, database)
	seedEditor(logger, cfg, database)

	store, err := storage.NewLocalStore(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("failed to init blob store", slog.Any("error", err))
		os.Exit(1)
	}

	handler := setupServer(logger, cfg, database, articleRepo, userRepo, store)

	runServer(logger, cfg, handler, &sweeper.Sweeper{
		Repo:   articleRepo,
		Store:  store,
		Logger: logger,
	})
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger, cfg *config.Config) *sql.DB {
	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN, db.DefaultConnectionConfig())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database, cfg.Database.Driver); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func buildRepos(driver string, database *sql.DB) (repository.ArticleRepository, repository.UserRepository) {
	if driver == "sqlite3" {
		return sqliteRepo.NewArticleRepo(database), sqliteRepo.NewUserRepo(database)
	}
	return pgRepo.NewArticleRepo(database), pgRepo.NewUserRepo(database)
}

// seedEditor provisions the initial account when seed credentials are
// configured. An existing row with the same email is left untouched.
func seedEditor(logger *slog.Logger, cfg *config.Config, database *sql.DB) {
	if cfg.Seed.Email == "" || cfg.Seed.Password == "" {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash seed password", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.SeedUser(database, cfg.Database.Driver, cfg.Seed.Email, cfg.Seed.Name, string(hash)); err != nil {
		logger.Error("failed to seed user", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed user ensured", slog.String("email", cfg.Seed.Email))
}

// setupServer wires the handlers and middleware chain.
func setupServer(
	logger *slog.Logger,
	cfg *config.Config,
	database *sql.DB,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	store storage.BlobStore,
) http.Handler {
	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("failed to parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, false)

	articles := &web.ArticleHandler{
		Articles: &artUC.Service{Repo: articleRepo, Store: store},
		Repo:     articleRepo,
		Store:    store,
		Renderer: renderer,
	}
	auth := web.NewAuthHandler(userRepo, sessions, renderer)
	health := &web.HealthHandler{DB: database, Version: version()}

	mux := http.NewServeMux()
	web.Register(mux, articles, auth, health, sessions, cfg.Storage.Dir, cfg.Storage.BaseURL)

	// Apply in reverse order (innermost to outermost).
	var chain http.Handler = mux
	chain = web.MetricsMiddleware(chain)
	chain = web.LimitRequestBody(8 << 20)(chain)
	chain = web.Logging(logger)(chain)
	chain = web.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)

	return chain
}

func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// runServer starts the HTTP server and the upload sweeper, then waits
// for a shutdown signal.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler, sw *sweeper.Sweeper) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	scheduler, err := sw.Schedule(ctx, cfg.Sweep.Schedule)
	if err != nil {
		logger.Error("failed to schedule upload sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	if scheduler != nil {
		logger.Info("upload sweeper scheduled", slog.String("schedule", cfg.Sweep.Schedule))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		if scheduler != nil {
			<-scheduler.Stop().Done()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
