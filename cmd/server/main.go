package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/farmyield/internal/catalog"
	"github.com/Simplici0/farmyield/internal/config"
	"github.com/Simplici0/farmyield/internal/db"
	"github.com/Simplici0/farmyield/internal/logging"
	"github.com/Simplici0/farmyield/internal/migrations"
	"github.com/Simplici0/farmyield/internal/plans"
	"github.com/Simplici0/farmyield/internal/seed"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	plants *catalog.Store
	plans  *plans.Store
	auth   *tokenAuth
	logger zerolog.Logger
}

func newServer(database *sql.DB, apiToken string, logger zerolog.Logger) *server {
	return &server{
		plants: catalog.NewStore(database),
		plans:  plans.NewStore(database),
		auth:   newTokenAuth(apiToken),
		logger: logger,
	}
}

func main() {
	cfg := config.Load()
	logger := logging.Component(logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}), "server")
	for _, warning := range cfg.Warnings() {
		logger.Warn().Msg(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	applied, err := migrations.Up(ctx, database)
	if err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}
	logger.Info().Int("applied", applied).Msg("migrations up to date")

	if cfg.IsDev() || cfg.CatalogPath != "" {
		plants, err := seed.Plants(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load seed catalog: %w", err)
		}
		stats, err := seed.Run(ctx, database, plants)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info().Int("inserted", stats.Inserts).Int("skipped", stats.Skipped).Msg("catalog seeded")
	}

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}

	srv := newServer(database, cfg.APIToken, logger)
	return serve(ctx, ln, srv.routes(), logger)
}

// serve runs handler on ln until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger zerolog.Logger) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info().Msg("server shut down")
		return nil
	})

	return g.Wait()
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/plants", func(r chi.Router) {
		r.Get("/", s.handlePlantsList)
		r.Get("/{name}", s.handlePlantGet)
		r.Post("/{name}/yield", s.handlePlantYield)
		r.Group(func(r chi.Router) {
			r.Use(s.auth.middleware)
			r.Post("/", s.handlePlantCreate)
			r.Put("/{name}", s.handlePlantUpdate)
			r.Delete("/{name}", s.handlePlantDelete)
		})
	})

	r.Route("/farms", func(r chi.Router) {
		r.Post("/report", s.handleFarmReport)
		r.Get("/", s.handlePlansList)
		r.Get("/{id}", s.handlePlanGet)
		r.With(s.auth.middleware).Post("/", s.handlePlanSave)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
