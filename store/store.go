// Package store is the persistence collaborator: organization-scoped
// repositories over gorm. Every query is bounded by the tenant id; the api
// layer never touches the database directly.
package store

import (
	"context"
	"net/http"

	"github.com/KOMKZ/go-dealdesk/errcode"
)

// Business codes within errcode.ModuleStore (30xxxx)
const (
	ErrCodeNotFound = 1
	ErrCodeQuery    = 2
	ErrCodeConflict = 3
)

var (
	// ErrNotFound record absent within the caller's organization
	ErrNotFound = errcode.New(
		errcode.ModuleStore, ErrCodeNotFound,
		"store", "error.store.not_found", "record not found",
		http.StatusNotFound,
	)

	// ErrQuery database operation failed
	ErrQuery = errcode.New(
		errcode.ModuleStore, ErrCodeQuery,
		"store", "error.store.query", "database operation failed",
		http.StatusInternalServerError,
	)

	// ErrConflict write conflicts with existing state
	ErrConflict = errcode.New(
		errcode.ModuleStore, ErrCodeConflict,
		"store", "error.store.conflict", "record conflict",
		http.StatusConflict,
	)
)

// Page offset/limit bounds resolved by the api layer
type Page struct {
	Offset int
	Limit  int
}

// DealFilter optional list filters; nil fields are ignored
type DealFilter struct {
	Stage    *string
	ClientID *string
}

// ClientFilter optional list filters
type ClientFilter struct {
	Name *string // substring match
}

// TaskFilter optional list filters. AssigneeID restricts visibility to the
// caller's own tasks plus unassigned ones.
type TaskFilter struct {
	Status     *string
	DealID     *string
	AssigneeID *string
}

// DocumentFilter optional list filters
type DocumentFilter struct {
	DealID *string
	Kind   *string
}

// PresentationFilter optional list filters
type PresentationFilter struct {
	DealID *string
}

// DealStore deal persistence contract
type DealStore interface {
	Create(ctx context.Context, deal *Deal) error
	GetByID(ctx context.Context, orgID, id string) (*Deal, error)
	List(ctx context.Context, orgID string, filter DealFilter, page Page) ([]Deal, int64, error)
	Update(ctx context.Context, deal *Deal) error
	Delete(ctx context.Context, orgID, id string) error
}

// ClientStore client persistence contract
type ClientStore interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, orgID, id string) (*Client, error)
	List(ctx context.Context, orgID string, filter ClientFilter, page Page) ([]Client, int64, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, orgID, id string) error
}

// TaskStore task persistence contract
type TaskStore interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, orgID, id string) (*Task, error)
	List(ctx context.Context, orgID string, filter TaskFilter, page Page) ([]Task, int64, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, orgID, id string) error
}

// DocumentStore document persistence contract
type DocumentStore interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, orgID, id string) (*Document, error)
	List(ctx context.Context, orgID string, filter DocumentFilter, page Page) ([]Document, int64, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, orgID, id string) error
}

// PresentationStore presentation persistence contract
type PresentationStore interface {
	Create(ctx context.Context, p *Presentation) error
	GetByID(ctx context.Context, orgID, id string) (*Presentation, error)
	List(ctx context.Context, orgID string, filter PresentationFilter, page Page) ([]Presentation, int64, error)
	Update(ctx context.Context, p *Presentation) error
	Delete(ctx context.Context, orgID, id string) error
}

// DashboardStore aggregate counters per organization
type DashboardStore interface {
	Summary(ctx context.Context, orgID string) (*DashboardSummary, error)
}
