package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// DashboardHandler aggregate counters for the caller's organization.
// The summary is expensive relative to its freshness needs, so its route
// carries a shorter cache TTL than the resource lists.
type DashboardHandler struct {
	dash store.DashboardStore
}

func NewDashboardHandler(dash store.DashboardStore) *DashboardHandler {
	return &DashboardHandler{dash: dash}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	orgID, _ := middleware.GetOrgID(c)

	sum, err := h.dash.Summary(c.Request.Context(), orgID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, sum)
}
