package tenant

import (
	"context"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/room"
)

type Repository interface {
	CreateWithRooms(ctx context.Context, t *Tenant, rooms []RoomAssignment) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetOwnedByAdmin(ctx context.Context, id string, adminID uint) (*Tenant, error)
	GetByPhone(ctx context.Context, phone string) (*Tenant, error)
	ListByAdmin(ctx context.Context, adminID uint) ([]Tenant, error)
	UpdateWithRooms(ctx context.Context, t *Tenant, rooms []RoomAssignment) error
	DeleteWithRooms(ctx context.Context, t *Tenant) error
	RoomsByTenant(ctx context.Context, tenantID string) ([]room.Room, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// CreateWithRooms inserts the tenant and claims the assigned rooms in one
// transaction; a partially assigned tenant is never persisted.
func (r *repository) CreateWithRooms(ctx context.Context, t *Tenant, rooms []RoomAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		for _, ra := range rooms {
			if err := tx.Model(&room.Room{}).
				Where("id = ? AND admin_id = ?", ra.ID, t.AdminID).
				Updates(map[string]interface{}{
					"tenant_id": t.ID,
					"price":     ra.Price,
					"occupied":  true,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetOwnedByAdmin(ctx context.Context, id string, adminID uint) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListByAdmin(ctx context.Context, adminID uint) ([]Tenant, error) {
	var tenants []Tenant
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&tenants).Error
	return tenants, err
}

// UpdateWithRooms saves the tenant row and reconciles room occupancy in one
// transaction: rooms no longer assigned are freed, new ones are claimed.
// A nil rooms slice leaves the current assignments untouched; an explicit
// empty slice frees everything.
func (r *repository) UpdateWithRooms(ctx context.Context, t *Tenant, rooms []RoomAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(t).Error; err != nil {
			return err
		}

		if rooms == nil {
			return nil
		}

		keep := make([]uint, 0, len(rooms))
		for _, ra := range rooms {
			keep = append(keep, ra.ID)
		}

		freeQuery := tx.Model(&room.Room{}).Where("tenant_id = ?", t.ID)
		if len(keep) > 0 {
			freeQuery = freeQuery.Where("id NOT IN ?", keep)
		}
		if err := freeQuery.Updates(map[string]interface{}{
			"tenant_id": nil,
			"occupied":  false,
		}).Error; err != nil {
			return err
		}

		for _, ra := range rooms {
			if err := tx.Model(&room.Room{}).
				Where("id = ? AND admin_id = ?", ra.ID, t.AdminID).
				Updates(map[string]interface{}{
					"tenant_id": t.ID,
					"price":     ra.Price,
					"occupied":  true,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWithRooms frees every room the tenant occupies and removes the
// tenant row in one transaction.
func (r *repository) DeleteWithRooms(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&room.Room{}).
			Where("tenant_id = ?", t.ID).
			Updates(map[string]interface{}{
				"tenant_id": nil,
				"occupied":  false,
			}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", t.ID).Delete(&Tenant{}).Error
	})
}

func (r *repository) RoomsByTenant(ctx context.Context, tenantID string) ([]room.Room, error) {
	var rooms []room.Room
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&rooms).Error
	return rooms, err
}
