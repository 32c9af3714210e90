package room

import (
	"time"
)

// Room represents one rentable room owned by an admin. Occupancy is
// exclusive: at most one tenant at a time, and the TenantID reference
// here is the source of truth for who occupies it.
type Room struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	AdminID  uint    `gorm:"not null;index" json:"admin_id"`
	TenantID *string `gorm:"type:uuid;index" json:"tenant_id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Floor    string  `gorm:"size:50;not null" json:"floor"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Occupied bool    `gorm:"default:false" json:"occupied"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

type CreateRoomRequest struct {
	Name  string  `json:"name" binding:"required"`
	Floor string  `json:"floor" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type UpdateRoomRequest struct {
	Name  string  `json:"name" binding:"required"`
	Floor string  `json:"floor" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}
