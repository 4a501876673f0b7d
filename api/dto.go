package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/KOMKZ/go-dealdesk/httpx/types"
	"github.com/KOMKZ/go-dealdesk/store"
)

var dealStages = []interface{}{
	store.DealStageLead,
	store.DealStageQualified,
	store.DealStageProposal,
	store.DealStageNegotiation,
	store.DealStageWon,
	store.DealStageLost,
}

var taskStatuses = []interface{}{
	store.TaskStatusOpen,
	store.TaskStatusInWork,
	store.TaskStatusDone,
	store.TaskStatusBlocked,
}

var documentKinds = []interface{}{
	store.DocumentKindContract,
	store.DocumentKindInvoice,
	store.DocumentKindBrief,
	store.DocumentKindOther,
}

// IDReq path parameter shared by all detail/update/delete routes
type IDReq struct {
	ID string `uri:"id"`
}

func (r IDReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
	)
}

// ---- deals ----

type CreateDealReq struct {
	ClientID string  `json:"client_id"`
	Title    string  `json:"title"`
	Stage    string  `json:"stage"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	OwnerID  string  `json:"owner_id"`
	Notes    string  `json:"notes"`
}

func (r CreateDealReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Stage, validation.Required, validation.In(dealStages...)),
		validation.Field(&r.Amount, validation.Min(0.0)),
		validation.Field(&r.Currency, validation.Length(0, 8)),
	)
}

type UpdateDealReq struct {
	ID       string  `uri:"id" json:"-"`
	ClientID string  `json:"client_id"`
	Title    string  `json:"title"`
	Stage    string  `json:"stage"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	OwnerID  string  `json:"owner_id"`
	Notes    string  `json:"notes"`
}

func (r UpdateDealReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Stage, validation.Required, validation.In(dealStages...)),
		validation.Field(&r.Amount, validation.Min(0.0)),
	)
}

type ListDealsReq struct {
	types.PageQuery
	Stage    string `form:"stage"`
	ClientID string `form:"client_id"`
}

func (r ListDealsReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Stage, validation.In(dealStages...)),
	)
}

// ---- clients ----

type CreateClientReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (r CreateClientReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, is.Email),
	)
}

type UpdateClientReq struct {
	ID      string `uri:"id" json:"-"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (r UpdateClientReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, is.Email),
	)
}

type ListClientsReq struct {
	types.PageQuery
	Name string `form:"name"`
}

// ---- tasks ----

type CreateTaskReq struct {
	DealID     string     `json:"deal_id"`
	AssigneeID string     `json:"assignee_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	DueAt      *time.Time `json:"due_at"`
}

func (r CreateTaskReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Status, validation.Required, validation.In(taskStatuses...)),
	)
}

type UpdateTaskReq struct {
	ID         string     `uri:"id" json:"-"`
	DealID     string     `json:"deal_id"`
	AssigneeID string     `json:"assignee_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	DueAt      *time.Time `json:"due_at"`
}

func (r UpdateTaskReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Status, validation.Required, validation.In(taskStatuses...)),
	)
}

type ListTasksReq struct {
	types.PageQuery
	Status string `form:"status"`
	DealID string `form:"deal_id"`
}

func (r ListTasksReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(taskStatuses...)),
	)
}

// ---- documents ----

type CreateDocumentReq struct {
	DealID    string `json:"deal_id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}

func (r CreateDocumentReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Kind, validation.Required, validation.In(documentKinds...)),
		validation.Field(&r.URL, is.URL),
		validation.Field(&r.SizeBytes, validation.Min(0)),
	)
}

type UpdateDocumentReq struct {
	ID        string `uri:"id" json:"-"`
	DealID    string `json:"deal_id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}

func (r UpdateDocumentReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Kind, validation.Required, validation.In(documentKinds...)),
	)
}

type ListDocumentsReq struct {
	types.PageQuery
	DealID string `form:"deal_id"`
	Kind   string `form:"kind"`
}

func (r ListDocumentsReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.In(documentKinds...)),
	)
}

// ---- presentations ----

type CreatePresentationReq struct {
	DealID     string `json:"deal_id"`
	Title      string `json:"title"`
	SlideCount int    `json:"slide_count"`
}

func (r CreatePresentationReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.SlideCount, validation.Min(0)),
	)
}

type UpdatePresentationReq struct {
	ID         string `uri:"id" json:"-"`
	DealID     string `json:"deal_id"`
	Title      string `json:"title"`
	SlideCount int    `json:"slide_count"`
}

func (r UpdatePresentationReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.SlideCount, validation.Min(0)),
	)
}

type ListPresentationsReq struct {
	types.PageQuery
	DealID string `form:"deal_id"`
}

// ListResp envelope for all list endpoints
type ListResp struct {
	Items interface{}    `json:"items"`
	Page  types.PageMeta `json:"page"`
}
