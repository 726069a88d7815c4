package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"gorm.io/gorm"

	"github.com/openinbox/inboxd/api"
	"github.com/openinbox/inboxd/config"
	"github.com/openinbox/inboxd/internal/cron"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/repository"
	"github.com/openinbox/inboxd/internal/tracing"
	"github.com/openinbox/inboxd/services"
)

type Server struct {
	config       *config.Config
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	repositories *repository.Repositories
	cronManager  *cron.CronManager
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config, db *gorm.DB) (*Server, error) {
	// Initialize logger
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	// Initialize tracing
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		log.Fatalf("Could not initialize jaeger tracer: %s", err.Error())
	}
	opentracing.SetGlobalTracer(tracer)

	// Initialize repositories
	repos := repository.InitRepositories(db)

	// Initialize services
	svcs, err := services.InitServices(cfg, appLogger, repos)
	if err != nil {
		return nil, err
	}

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	return &Server{
		config:       cfg,
		log:          appLogger,
		router:       router,
		services:     svcs,
		repositories: repos,
		cronManager:  cron.NewCronManager(cfg, appLogger, svcs),
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:    ":" + cfg.AppConfig.APIPort,
			Handler: router,
		},
	}, nil
}

func (s *Server) Initialize(ctx context.Context) error {
	// New mail invalidates the published view
	s.services.IMAPService.SetOnSync(func(ctx context.Context) {
		s.wrapGoroutine("sync_refresh", func() {
			s.services.InboxViewService.Refresh(ctx, s.config.AppConfig.ViewerAccount)
		})
	})

	api.RegisterRoutes(ctx, s.router, s.log, s.services, s.repositories,
		s.config.AppConfig.APIKey, s.config.AppConfig.ViewerAccount)

	return nil
}

func (s *Server) recoverWithJaeger(name string) {
	if r := recover(); r != nil {
		span := opentracing.GlobalTracer().StartSpan("panic." + name)
		defer span.Finish()

		ext.Error.Set(span, true)
		span.LogKV(
			"event", "panic",
			"process", name,
			"error", r,
			"stack", string(debug.Stack()),
		)

		s.log.Errorf("Panic in %s: %v\n%s", name, r, debug.Stack())
	}
}

func (s *Server) wrapGoroutine(name string, fn func()) {
	defer s.recoverWithJaeger(name)
	fn()
}

func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Initialize(ctx); err != nil {
		return err
	}

	// View-state worker first so early requests and syncs have a consumer
	s.services.ViewStateService.Start(ctx)

	s.wrapGoroutine("imap_service", func() {
		if err := s.services.IMAPService.Start(ctx); err != nil {
			s.log.Errorf("IMAP service error: %v", err)
		}
	})

	s.cronManager.Start()

	go s.wrapGoroutine("http_server", func() {
		s.log.Infof("Starting HTTP server on port %s", s.config.AppConfig.APIPort)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("HTTP server error: %v", err)
		}
	})

	s.log.Info("inboxd is now running. Press Ctrl+C to exit.")
	return s.waitForShutdown()
}

func (s *Server) waitForShutdown() error {
	defer s.recoverWithJaeger("shutdown")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	s.log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	s.cronManager.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("HTTP server shutdown error: %v", err)
	}

	stopDone := make(chan struct{})
	go s.wrapGoroutine("imap_service_shutdown", func() {
		defer close(stopDone)
		if err := s.services.IMAPService.Stop(); err != nil {
			s.log.Errorf("IMAP service shutdown error: %v", err)
		}
	})

	select {
	case <-stopDone:
	case <-time.After(10 * time.Second):
		s.log.Warn("IMAP service stop timed out, forcing exit")
	}

	s.services.ViewStateService.Stop()

	if s.tracerCloser != nil {
		s.tracerCloser.Close()
	}

	s.log.Info("Shutdown complete")
	return nil
}
