package room

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id uint) (*Room, error)
	GetOwnedByAdmin(ctx context.Context, id uint, adminID uint) (*Room, error)
	ListByAdmin(ctx context.Context, adminID uint) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	return &room, err
}

func (r *repository) GetOwnedByAdmin(ctx context.Context, id uint, adminID uint) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		First(&room).Error
	return &room, err
}

func (r *repository) ListByAdmin(ctx context.Context, adminID uint) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *repository) Update(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Room{}, id).Error
}
