// Package api exposes the dealdesk HTTP surface: CRUD over deals, clients,
// tasks, documents and presentations, the dashboard aggregate, and the admin
// cache operations. Handlers stay thin; tenancy comes from the auth claims,
// never from request input.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/httpx/types"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// DealHandler deal CRUD endpoints
type DealHandler struct {
	deals store.DealStore
}

func NewDealHandler(deals store.DealStore) *DealHandler {
	return &DealHandler{deals: deals}
}

func (h *DealHandler) Create(c *gin.Context) {
	var req CreateDealReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	deal := &store.Deal{
		OrgID:    orgID,
		ClientID: req.ClientID,
		Title:    req.Title,
		Stage:    req.Stage,
		Amount:   req.Amount,
		Currency: req.Currency,
		OwnerID:  req.OwnerID,
		Notes:    req.Notes,
	}
	if deal.Currency == "" {
		deal.Currency = "USD"
	}
	if err := h.deals.Create(c.Request.Context(), deal); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, deal)
}

func (h *DealHandler) Get(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	deal, err := h.deals.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, deal)
}

func (h *DealHandler) List(c *gin.Context) {
	var req ListDealsReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	req.ApplyDefaults()
	orgID, _ := middleware.GetOrgID(c)

	filter := store.DealFilter{}
	if req.Stage != "" {
		filter.Stage = &req.Stage
	}
	if req.ClientID != "" {
		filter.ClientID = &req.ClientID
	}

	items, total, err := h.deals.List(c.Request.Context(), orgID, filter,
		store.Page{Offset: req.Offset(), Limit: req.Size})
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, ListResp{
		Items: items,
		Page:  types.NewPageMeta(total, req.Current, req.Size),
	})
}

func (h *DealHandler) Update(c *gin.Context) {
	var req UpdateDealReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	deal := &store.Deal{
		ID:       req.ID,
		OrgID:    orgID,
		ClientID: req.ClientID,
		Title:    req.Title,
		Stage:    req.Stage,
		Amount:   req.Amount,
		Currency: req.Currency,
		OwnerID:  req.OwnerID,
		Notes:    req.Notes,
	}
	if err := h.deals.Update(c.Request.Context(), deal); err != nil {
		httpx.HandleError(c, err)
		return
	}

	updated, err := h.deals.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, updated)
}

func (h *DealHandler) Delete(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	if err := h.deals.Delete(c.Request.Context(), orgID, req.ID); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, gin.H{"id": req.ID})
}
