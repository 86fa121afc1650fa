// Package server собирает HTTP сервер авторизации:
// маршруты, middleware и жизненный цикл.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/authsvc/internal/server/auth"
	"github.com/iudanet/authsvc/internal/server/config"
	"github.com/iudanet/authsvc/internal/server/handlers"
	"github.com/iudanet/authsvc/internal/server/middleware"
	"github.com/iudanet/authsvc/internal/server/storage"
	"github.com/iudanet/authsvc/internal/server/token"
)

// shutdownTimeout время на graceful shutdown открытых соединений
const shutdownTimeout = 10 * time.Second

// Server представляет HTTP сервер авторизации
type Server struct {
	logger  *slog.Logger
	httpSrv *http.Server
	handler http.Handler
}

// New создает сервер: собирает сервисы, маршруты и цепочку middleware
func New(logger *slog.Logger, cfg *config.Config, users storage.UserStorage, version string) *Server {
	tokens := token.NewService(cfg.SecretKey, cfg.AccessTokenTTL)

	var verifier auth.CredentialVerifier = auth.PlainVerifier{}
	if cfg.PasswordScheme == config.PasswordSchemeBcrypt {
		verifier = auth.BcryptVerifier{}
	}

	authService := auth.NewService(logger, users, tokens, verifier)
	authHandler := handlers.NewAuthHandler(logger, authService)
	healthHandler := handlers.NewHealthHandler(logger, version)

	// Credential эндпоинты дополнительно прикрыты rate limit
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger)

	mux := http.NewServeMux()
	mux.Handle("POST /register", limiter.Limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /login", limiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /profile",
		middleware.Authenticate(logger, tokens, true)(http.HandlerFunc(authHandler.Profile)))
	mux.HandleFunc("GET /health", healthHandler.Health)

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger:  logger,
		handler: handler,
		httpSrv: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler возвращает корневой handler (используется в тестах)
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run запускает сервер и блокируется до отмены контекста
// После отмены выполняется graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server starting", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	return nil
}
