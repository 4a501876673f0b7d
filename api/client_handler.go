package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/httpx/types"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// ClientHandler client CRUD endpoints
type ClientHandler struct {
	clients store.ClientStore
}

func NewClientHandler(clients store.ClientStore) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	client := &store.Client{
		OrgID:   orgID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}
	if err := h.clients.Create(c.Request.Context(), client); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	client, err := h.clients.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	var req ListClientsReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	req.ApplyDefaults()
	orgID, _ := middleware.GetOrgID(c)

	filter := store.ClientFilter{}
	if req.Name != "" {
		filter.Name = &req.Name
	}

	items, total, err := h.clients.List(c.Request.Context(), orgID, filter,
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

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	client := &store.Client{
		ID:      req.ID,
		OrgID:   orgID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}
	if err := h.clients.Update(c.Request.Context(), client); err != nil {
		httpx.HandleError(c, err)
		return
	}

	updated, err := h.clients.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, updated)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	if err := h.clients.Delete(c.Request.Context(), orgID, req.ID); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, gin.H{"id": req.ID})
}
