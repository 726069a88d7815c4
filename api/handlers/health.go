package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openinbox/inboxd/interfaces"
)

// HealthCheck provides a simple health check endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Status returns the current sync status of the configured mailboxes
func Status(mailSource interfaces.MailSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, mailSource.Status())
	}
}
