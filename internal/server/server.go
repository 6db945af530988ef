package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exchange-frontend/internal/auth"
	"exchange-frontend/internal/backend"
	"exchange-frontend/internal/config"
	"exchange-frontend/internal/kv"
	"exchange-frontend/internal/metrics"
	"exchange-frontend/internal/middlewares"
	"exchange-frontend/internal/redirect"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
)

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	intentKV    kv.Store
	instanceID  string
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	sessionManager, err := auth.NewSessionManager(logger, cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	var oauthProvider middlewares.OAuthProvider
	if cfg.OAuth.IssuerURL != "" {
		oauthProvider, err = auth.NewOAuthProvider(ctx, cfg.OAuth)
		if err != nil {
			cancel()
			return nil, err
		}
	} else {
		logger.Warn("No OAuth issuer configured, only password login is available")
	}

	backendClient := backend.NewHTTPClient(cfg.Backend, logger)

	intentKV, err := kv.NewStore(cfg.Redirect.Store, cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create redirect intent store: %w", err)
	}

	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		if redisStore, ok := intentKV.(*kv.RedisStore); ok {
			collector := redisprometheus.NewCollector(metrics.Namespace, "intents", redisStore.Client())
			if err := prometheus.Register(collector); err != nil {
				logger.Debug("failed to register redis intent collector: already registered", "error", err)
			}
		}
	}

	intents := redirect.NewStore(intentKV, cfg.Redirect.Expiry, logger)

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, sessionManager, oauthProvider, backendClient, intents)

	router := setupRouter(appCtx)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	var debugServer *http.Server
	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		debugRouter := setupDebugRouter()
		debugServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler: debugRouter,
		}
	}

	instanceID := os.Getenv("HOSTNAME")
	if instanceID == "" {
		instanceID = uuid.New().String()
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		appCtx:      appCtx,
		httpServer:  httpServer,
		debugServer: debugServer,
		intentKV:    intentKV,
		instanceID:  instanceID,
		cancel:      cancel,
	}, nil
}

func (s *Server) Start() error {
	go func() {
		s.logger.Info("Server Started", "port", s.cfg.Server.Port, "instance", s.instanceID)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	if closer, ok := s.intentKV.(*kv.RedisStore); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn("Failed to close redirect intent store", "error", err)
		}
	}

	s.logger.Info("Server Exited")
	return nil
}
