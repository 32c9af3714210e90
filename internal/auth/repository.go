package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/rent"
	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/internal/tenant"
	"github.com/sharath018/rental-management-backend/internal/updaterequest"
)

type Repository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id uint) (*Admin, error)
	GetByPhone(ctx context.Context, phone string) (*Admin, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	DeleteCascade(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, admin *Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Admin, error) {
	var admin Admin
	err := r.db.WithContext(ctx).First(&admin, id).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*Admin, error) {
	var admin Admin
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// DeleteCascade removes the admin and everything they own in one
// transaction. Rent history goes too; account deletion is the one place
// the ledger is not preserved.
func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", id).Delete(&rent.RentEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("admin_id = ?", id).Delete(&updaterequest.UpdateRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("admin_id = ?", id).Delete(&room.Room{}).Error; err != nil {
			return err
		}
		if err := tx.Where("admin_id = ?", id).Delete(&tenant.Tenant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Admin{}, id).Error
	})
}
