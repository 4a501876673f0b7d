package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deal stage values
const (
	DealStageLead        = "lead"
	DealStageQualified   = "qualified"
	DealStageProposal    = "proposal"
	DealStageNegotiation = "negotiation"
	DealStageWon         = "won"
	DealStageLost        = "lost"
)

// Task status values
const (
	TaskStatusOpen    = "open"
	TaskStatusInWork  = "in_work"
	TaskStatusDone    = "done"
	TaskStatusBlocked = "blocked"
)

// Document kind values
const (
	DocumentKindContract = "contract"
	DocumentKindInvoice  = "invoice"
	DocumentKindBrief    = "brief"
	DocumentKindOther    = "other"
)

// Deal 商机记录, scoped to one organization
type Deal struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrgID     string    `gorm:"type:varchar(36);index:idx_deals_org;not null" json:"org_id"`
	ClientID  string    `gorm:"type:varchar(36);index" json:"client_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Stage     string    `gorm:"type:varchar(32);index;not null" json:"stage"`
	Amount    float64   `gorm:"not null;default:0" json:"amount"`
	Currency  string    `gorm:"type:varchar(8);not null;default:USD" json:"currency"`
	OwnerID   string    `gorm:"type:varchar(36);index" json:"owner_id"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Deal) TableName() string { return "deals" }

// Client 客户记录
type Client struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrgID     string    `gorm:"type:varchar(36);index:idx_clients_org;not null" json:"org_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(64)" json:"phone"`
	Company   string    `gorm:"type:varchar(255)" json:"company"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// Task 任务记录. AssigneeID empty means unassigned.
type Task struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrgID      string     `gorm:"type:varchar(36);index:idx_tasks_org;not null" json:"org_id"`
	DealID     string     `gorm:"type:varchar(36);index" json:"deal_id"`
	AssigneeID string     `gorm:"type:varchar(36);index" json:"assignee_id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	Status     string     `gorm:"type:varchar(32);index;not null" json:"status"`
	DueAt      *time.Time `json:"due_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// Document 文档记录, metadata only; blob storage is out of scope here
type Document struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrgID     string    `gorm:"type:varchar(36);index:idx_documents_org;not null" json:"org_id"`
	DealID    string    `gorm:"type:varchar(36);index" json:"deal_id"`
	Kind      string    `gorm:"type:varchar(32);not null" json:"kind"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	URL       string    `gorm:"type:varchar(1024)" json:"url"`
	SizeBytes int64     `gorm:"not null;default:0" json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// Presentation 演示文稿记录
type Presentation struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrgID      string    `gorm:"type:varchar(36);index:idx_presentations_org;not null" json:"org_id"`
	DealID     string    `gorm:"type:varchar(36);index" json:"deal_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	SlideCount int       `gorm:"not null;default:0" json:"slide_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Presentation) TableName() string { return "presentations" }

// DashboardSummary aggregate counters for one organization
type DashboardSummary struct {
	OrgID             string  `json:"org_id"`
	DealCount         int64   `json:"deal_count"`
	OpenDealCount     int64   `json:"open_deal_count"`
	WonDealAmount     float64 `json:"won_deal_amount"`
	ClientCount       int64   `json:"client_count"`
	OpenTaskCount     int64   `json:"open_task_count"`
	DocumentCount     int64   `json:"document_count"`
	PresentationCount int64   `json:"presentation_count"`
}

// BeforeCreate assigns a uuid when the caller did not
func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (p *Presentation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
