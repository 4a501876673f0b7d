package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/httpx/types"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// TaskHandler task CRUD endpoints. The list view is caller-scoped: a user
// sees their own tasks plus the unassigned pool, so its cache entries are
// declared caller sensitive at route registration.
type TaskHandler struct {
	tasks store.TaskStore
}

func NewTaskHandler(tasks store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	task := &store.Task{
		OrgID:      orgID,
		DealID:     req.DealID,
		AssigneeID: req.AssigneeID,
		Title:      req.Title,
		Status:     req.Status,
		DueAt:      req.DueAt,
	}
	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	task, err := h.tasks.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	var req ListTasksReq
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
	userID, _ := middleware.GetUserID(c)

	filter := store.TaskFilter{AssigneeID: &userID}
	if req.Status != "" {
		filter.Status = &req.Status
	}
	if req.DealID != "" {
		filter.DealID = &req.DealID
	}

	items, total, err := h.tasks.List(c.Request.Context(), orgID, filter,
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

func (h *TaskHandler) Update(c *gin.Context) {
	var req UpdateTaskReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	task := &store.Task{
		ID:         req.ID,
		OrgID:      orgID,
		DealID:     req.DealID,
		AssigneeID: req.AssigneeID,
		Title:      req.Title,
		Status:     req.Status,
		DueAt:      req.DueAt,
	}
	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		httpx.HandleError(c, err)
		return
	}

	updated, err := h.tasks.GetByID(c.Request.Context(), orgID, req.ID)
	if err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, updated)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	var req IDReq
	if err := httpx.Parse(c, &req); err != nil {
		httpx.BadRequestJson(c, err)
		return
	}
	orgID, _ := middleware.GetOrgID(c)

	if err := h.tasks.Delete(c.Request.Context(), orgID, req.ID); err != nil {
		httpx.HandleError(c, err)
		return
	}
	httpx.OkJson(c, gin.H{"id": req.ID})
}
