package auth

import (
	"time"
)

// Admin is the landlord account. Phone doubles as the login username.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Phone        string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email        string    `gorm:"size:100" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	HomeName     string    `gorm:"size:100;not null" json:"home_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
	HomeName string `json:"home_name" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the signed token plus which kind of account matched.
type LoginResult struct {
	Token    string
	Role     string
	AdminID  uint   // set when Role == admin
	TenantID string // set when Role == tenant
}

type CheckPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
