package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/errors"
	"github.com/openinbox/inboxd/internal/tracing"
)

// MarkEmailRead flips the unread flag on a stored message and refreshes the
// published view so unread counts update immediately.
func MarkEmailRead(repo interfaces.MessageRepository, inboxView interfaces.InboxViewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "MarkEmailRead", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		id := c.Param("id")

		var request struct {
			Read bool `json:"read"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email, err := repo.GetByID(ctx, id)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if email == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errors.ErrMessageNotFound.Error()})
			return
		}

		if err := repo.MarkRead(ctx, id, request.Read); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		inboxView.Refresh(ctx, email.AccountID)
		c.JSON(http.StatusOK, gin.H{"status": "updated", "id": id})
	}
}

// DeleteEmail soft-deletes a stored message
func DeleteEmail(repo interfaces.MessageRepository, inboxView interfaces.InboxViewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "DeleteEmail", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		id := c.Param("id")

		email, err := repo.GetByID(ctx, id)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if email == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": errors.ErrMessageNotFound.Error()})
			return
		}

		if err := repo.Delete(ctx, id); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		inboxView.Refresh(ctx, email.AccountID)
		c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
	}
}
