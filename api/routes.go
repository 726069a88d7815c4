package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/openinbox/inboxd/api/handlers"
	"github.com/openinbox/inboxd/api/middleware"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/repository"
	"github.com/openinbox/inboxd/internal/tracing"
	"github.com/openinbox/inboxd/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, log logger.Logger, s *services.Services, repos *repository.Repositories, apikey, defaultAccount string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// Health check and status endpoints
	r.GET("/health", handlers.HealthCheck)
	r.GET("/status", handlers.Status(s.IMAPService))

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-INBOXD-API-KEY",
		ValidAPIKey: apikey,
	})

	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.TracingMiddleware())
	{
		inbox := api.Group("/inbox")
		{
			inbox.GET("/view", handlers.GetView(s.InboxViewService, defaultAccount))
			inbox.GET("/counts", handlers.GetCounts(s.InboxViewService, defaultAccount))
			inbox.GET("/ws", handlers.ViewStream(log, s.ViewStateService))
		}

		emails := api.Group("/emails")
		{
			emails.PUT("/:id/read", handlers.MarkEmailRead(repos.EmailRepository, s.InboxViewService))
			emails.DELETE("/:id", handlers.DeleteEmail(repos.EmailRepository, s.InboxViewService))
		}

		settings := api.Group("/settings")
		{
			settings.GET("/filters", handlers.GetFilterSettings(s.InboxViewService, defaultAccount))
			settings.PUT("/filters", handlers.UpdateFilterSettings(s.InboxViewService, defaultAccount))
		}
	}
}
