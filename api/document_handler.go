package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/httpx/types"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// DocumentHandler document metadata endpoints
type DocumentHandler struct {
	docs store.DocumentStore
}

func NewDocumentHandler(docs store.DocumentStore) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	doc := &store.Document{
		OrgID:     orgID,
		DealID:    req.DealID,
		Kind:      req.Kind,
		Name:      req.Name,
		URL:       req.URL,
		SizeBytes: req.SizeBytes,
	}
	if err := h.docs.Create(c.Request.Context(), doc); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, doc)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	doc, err := h.docs.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	var req ListDocumentsReq
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

	filter := store.DocumentFilter{}
	if req.DealID != "" {
		filter.DealID = &req.DealID
	}
	if req.Kind != "" {
		filter.Kind = &req.Kind
	}

	items, total, err := h.docs.List(c.Request.Context(), orgID, filter,
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

func (h *DocumentHandler) Update(c *gin.Context) {
	var req UpdateDocumentReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	doc := &store.Document{
		ID:        req.ID,
		OrgID:     orgID,
		DealID:    req.DealID,
		Kind:      req.Kind,
		Name:      req.Name,
		URL:       req.URL,
		SizeBytes: req.SizeBytes,
	}
	if err := h.docs.Update(c.Request.Context(), doc); err != nil {
		httpx.HandleError(c, err)
		return
	}

	updated, err := h.docs.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, updated)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	if err := h.docs.Delete(c.Request.Context(), orgID, req.ID); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, gin.H{"id": req.ID})
}
