package rent

import (
	"time"
)

// RentEntry is one billing record for one (room, tenant, billing period)
// triple. TotalCost is stored and re-derived from the three cost components
// inside the same transaction whenever any of them changes; PaymentStatus is
// always recomputed from the freshly derived total, never stored stale.
//
// The composite unique index is the storage-layer backstop for the
// generator's check-then-insert flow running concurrently.
type RentEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoomID   uint   `gorm:"not null;index;uniqueIndex:idx_rent_room_tenant_period" json:"room_id"`
	TenantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_rent_room_tenant_period" json:"tenant_id"`
	AdminID  uint   `gorm:"not null;index" json:"admin_id"`

	BillingMonth time.Time `gorm:"not null;index;uniqueIndex:idx_rent_room_tenant_period" json:"billing_month"`

	RoomCost         float64 `gorm:"type:decimal(10,2);not null" json:"room_cost"`
	ElectricityCost  float64 `gorm:"type:decimal(10,2);default:0" json:"electricity_cost"`
	ElectricityUnits float64 `gorm:"type:decimal(10,2);default:0" json:"electricity_units"`
	MaintenanceCost  float64 `gorm:"type:decimal(10,2);default:0" json:"maintenance_cost"`
	TotalCost        float64 `gorm:"type:decimal(10,2);not null" json:"total_cost"`
	PaidAmount       float64 `gorm:"type:decimal(10,2);default:0" json:"paid_amount"`
	PaymentStatus    string  `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RentEntry) TableName() string {
	return "rent_entries"
}

// GenerateResult summarizes a generator run.
type GenerateResult struct {
	Created int    `json:"created"`
	Message string `json:"message"`
}

// TenantInfo is the tenant slice of a rent view.
type TenantInfo struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	PhotoURL string `json:"photoUrl"`
}

// RoomInfo is the room slice of a rent view.
type RoomInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Floor string `json:"floor"`
}

// RentView is one rent entry enriched with tenant/room display info and the
// previous period's meter reading.
type RentView struct {
	ID                   uint       `json:"id"`
	Tenant               TenantInfo `json:"tenant"`
	Room                 RoomInfo   `json:"room"`
	Month                string     `json:"month"`
	RoomCost             float64    `json:"roomCost"`
	ElectricityCost      float64    `json:"electricityCost"`
	ElectricityUnits     float64    `json:"electricityUnits"`
	PrevElectricityUnits float64    `json:"prevElectricityUnits"`
	MaintenanceCost      float64    `json:"maintenanceCost"`
	TotalCost            float64    `json:"totalCost"`
	PaidAmount           float64    `json:"paidAmount"`
	PaymentStatus        string     `json:"paymentStatus"`
}

// UpcomingRoom is a projected (not yet billed) room charge.
type UpcomingRoom struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Floor     string  `json:"floor"`
	TotalCost float64 `json:"total_cost"`
}

// UpcomingRent projects the first bill of a tenant who moved in during the
// current period and has no rent entry yet.
type UpcomingRent struct {
	Tenant    TenantInfo     `json:"tenant"`
	Rooms     []UpcomingRoom `json:"rooms"`
	TotalCost float64        `json:"total_cost"`
}

// UpdateRentRequest overwrites the cost fields and paid amount of one entry.
// The caller is trusted to have applied ComputeElectricityCost already.
type UpdateRentRequest struct {
	RoomID           uint    `json:"roomId" binding:"required"`
	RoomCost         float64 `json:"roomCost"`
	ElectricityCost  float64 `json:"electricityCost"`
	ElectricityUnits float64 `json:"electricityUnits"`
	MaintenanceCost  float64 `json:"maintenanceCost"`
	PaidAmount       float64 `json:"paidAmount"`
}
