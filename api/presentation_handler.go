package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/httpx/types"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// PresentationHandler presentation endpoints
type PresentationHandler struct {
	decks store.PresentationStore
}

func NewPresentationHandler(decks store.PresentationStore) *PresentationHandler {
	return &PresentationHandler{decks: decks}
}

func (h *PresentationHandler) Create(c *gin.Context) {
	var req CreatePresentationReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	p := &store.Presentation{
		OrgID:      orgID,
		DealID:     req.DealID,
		Title:      req.Title,
		SlideCount: req.SlideCount,
	}
	if err := h.decks.Create(c.Request.Context(), p); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, p)
}

func (h *PresentationHandler) Get(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	p, err := h.decks.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, p)
}

func (h *PresentationHandler) List(c *gin.Context) {
	var req ListPresentationsReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	req.ApplyDefaults()
	orgID, _ := middleware.GetOrgID(c)

	filter := store.PresentationFilter{}
	if req.DealID != "" {
		filter.DealID = &req.DealID
	}

	items, total, err := h.decks.List(c.Request.Context(), orgID, filter,
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

func (h *PresentationHandler) Update(c *gin.Context) {
	var req UpdatePresentationReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	p := &store.Presentation{
		ID:         req.ID,
		OrgID:      orgID,
		DealID:     req.DealID,
		Title:      req.Title,
		SlideCount: req.SlideCount,
	}
	if err := h.decks.Update(c.Request.Context(), p); err != nil {
		httpx.HandleError(c, err)
		return
	}

	updated, err := h.decks.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, updated)
}

func (h *PresentationHandler) Delete(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	if err := h.decks.Delete(c.Request.Context(), orgID, req.ID); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, gin.H{"id": req.ID})
}
