package updaterequest

import (
	"time"
)

const (
	StatusPending      = "pending"
	StatusAcknowledged = "acknowledged"
	StatusDismissed    = "dismissed"
)

// UpdateRequest is a tenant-authored message asking the admin to revise a
// bill. Requests are never deleted; the audit trail lives in the status
// column. acknowledged and dismissed are terminal.
type UpdateRequest struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	AdminID  uint   `gorm:"not null;index" json:"admin_id"`

	Message string `gorm:"type:text" json:"message"`
	Status  string `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UpdateRequest) TableName() string {
	return "update_requests"
}

type CreateRequest struct {
	Message string `json:"message"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// RequestView includes the tenant display fields an admin inbox needs.
type RequestView struct {
	UpdateRequest
	TenantName  string `json:"tenant_name"`
	TenantPhone string `json:"tenant_phone"`
}
