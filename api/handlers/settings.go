package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openinbox/inboxd/dto"
	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/tracing"
)

// GetFilterSettings returns the account's effective filter configuration
func GetFilterSettings(inboxView interfaces.InboxViewService, defaultAccount string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "GetFilterSettings", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		account, ok := accountID(c, defaultAccount)
		if !ok {
			return
		}
		tracing.TagAccount(span, account)

		cfg, err := inboxView.GetFilterConfig(ctx, account)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, dto.MapFilterConfig(account, cfg))
	}
}

// UpdateFilterSettings replaces the account's filter settings and refreshes
// the published view
func UpdateFilterSettings(inboxView interfaces.InboxViewService, defaultAccount string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "UpdateFilterSettings", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		account, ok := accountID(c, defaultAccount)
		if !ok {
			return
		}
		tracing.TagAccount(span, account)

		var request dto.FilterSettingsRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		settings, err := request.ToModel(account)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := inboxView.UpdateFilterSettings(ctx, settings); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, dto.MapFilterConfig(account, settings.Config()))
	}
}
