package tenant

import (
	"time"
)

// Tenant is a renter managed by one admin. The phone number doubles as the
// login username; the password is always stored as a bcrypt hash. Occupancy
// lives on the room side (rooms.tenant_id), not here.
type Tenant struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID uint   `gorm:"not null;index" json:"admin_id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Phone        string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	MoveInDate  *time.Time `json:"move_in_date"`
	MoveOutDate *time.Time `json:"move_out_date"`

	PhotoURL string `gorm:"size:500" json:"photo_url"`

	// Documents are a fixed, small set rather than an open-ended
	// collection; each slot holds an optional storage URL.
	DocAadhar    string `gorm:"size:500" json:"doc_aadhar"`
	DocPan       string `gorm:"size:500" json:"doc_pan"`
	DocVoter     string `gorm:"size:500" json:"doc_voter"`
	DocLicense   string `gorm:"size:500" json:"doc_license"`
	DocPolice    string `gorm:"size:500" json:"doc_police"`
	DocAgreement string `gorm:"size:500" json:"doc_agreement"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// RoomAssignment names one room a tenant should occupy, with the monthly
// price to charge for it.
type RoomAssignment struct {
	ID    uint    `json:"id"`
	Price float64 `json:"price"`
}

type CreateTenantInput struct {
	FullName   string
	Phone      string
	MoveInDate *time.Time
	Rooms      []RoomAssignment
	PhotoURL   string
	Documents  Documents
}

type UpdateTenantInput struct {
	FullName    string
	Phone       string
	MoveInDate  *time.Time
	MoveOutDate *time.Time
	Rooms       []RoomAssignment
	PhotoURL    *string
	Documents   *Documents
}

// Documents mirrors the fixed document slots on the model.
type Documents struct {
	Aadhar    string `json:"doc_aadhar"`
	Pan       string `json:"doc_pan"`
	Voter     string `json:"doc_voter"`
	License   string `json:"doc_license"`
	Police    string `json:"doc_police"`
	Agreement string `json:"doc_agreement"`
}
