package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openinbox/inboxd/dto"
	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/errors"
	"github.com/openinbox/inboxd/internal/tracing"
)

// accountID resolves the account a request operates on, falling back to the
// server's configured viewer account.
func accountID(c *gin.Context, defaultAccount string) (string, bool) {
	account := c.Query("account")
	if account == "" {
		account = defaultAccount
	}
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrAccountMissing.Error()})
		return "", false
	}
	return account, true
}

// GetView computes the full inbox view for the requested parameters
func GetView(inboxView interfaces.InboxViewService, defaultAccount string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "GetView", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		account, ok := accountID(c, defaultAccount)
		if !ok {
			return
		}
		tracing.TagAccount(span, account)

		var query dto.ViewQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		params, err := query.ToViewParameters()
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		state, err := inboxView.GetView(ctx, account, params)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, dto.MapViewState(state))
	}
}

// GetCounts returns the per-filter counts for the current tab context
func GetCounts(inboxView interfaces.InboxViewService, defaultAccount string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "GetCounts", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		account, ok := accountID(c, defaultAccount)
		if !ok {
			return
		}
		tracing.TagAccount(span, account)

		tab := enum.TabAll
		if raw := c.Query("tab"); raw != "" {
			decoded, ok := enum.DecodeTab(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tab: " + raw})
				return
			}
			tab = decoded
		}

		pinnedOption := enum.PinnedOption("")
		if raw := c.Query("pinned"); raw != "" {
			decoded, ok := enum.DecodePinnedOption(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pinned option: " + raw})
				return
			}
			pinnedOption = decoded
		}

		counts, err := inboxView.GetCounts(ctx, account, tab, pinnedOption)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make(map[string]int, len(counts))
		for filter, count := range counts {
			out[filter.String()] = count
		}
		c.JSON(http.StatusOK, out)
	}
}
