package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/dataset"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/lexicon"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/vocab"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/vocabimport"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/transport/middleware"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects the store,
// starts the lexicon load in the background and serves HTTP until ctx ends,
// then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("lexicon_source", cfg.Lexicon.Source),
	)

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer srv.close()

	return srv.serve(ctx)
}

type server struct {
	cfg     *config.Config
	log     *slog.Logger
	handler http.Handler
	index   *lexicon.Index
	closers []func()
}

// newServer wires adapters, services and transport.
func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*server, error) {
	s := &server{cfg: cfg, log: logger}

	store, closeStore, err := OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, closeStore)

	source, err := dataset.New(ctx, cfg.Lexicon, logger)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("lexicon source: %w", err)
	}
	s.index = lexicon.NewIndex(logger, source, cfg.Lexicon)
	s.index.Start(ctx)

	sessions := vocab.NewSessions(logger, store, cfg.Vocab)
	vocabSvc := vocab.NewService(logger, store, sessions)
	importSvc := vocabimport.NewService(logger, store, sessions, vocabimport.SpecFromConfig(cfg.Import))

	mux := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(store, s.index, BuildVersion()),
		Lexicon: rest.NewLexiconHandler(s.index, logger),
		Vocab:   rest.NewVocabHandler(sessions, logger),
		Admin:   rest.NewAdminHandler(importSvc, vocabSvc, logger),
	}, middleware.AdminKey(logger, cfg.Admin.KeyHash))

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		s.closers = append(s.closers, rl.Stop)
		mws = append(mws, rl.Middleware())
	}
	s.handler = middleware.Chain(mws...)(mux)

	if cfg.Admin.KeyHash == "" {
		logger.Warn("admin key hash not configured, admin endpoints disabled")
	}
	return s, nil
}

// serve runs the HTTP server and a shutdown watcher in one errgroup.
func (s *server) serve(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port)),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("http server listening", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down", slog.Duration("timeout", s.cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

func (s *server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
