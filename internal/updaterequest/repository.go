package updaterequest

import (
	"context"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/tenant"
)

type Repository interface {
	Create(ctx context.Context, req *UpdateRequest) error
	GetByID(ctx context.Context, id string) (*UpdateRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListPendingByAdmin(ctx context.Context, adminID uint) ([]RequestView, error)
	ListVisibleByTenant(ctx context.Context, tenantID string) ([]UpdateRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, req *UpdateRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*UpdateRequest, error) {
	var req UpdateRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&UpdateRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListPendingByAdmin is the admin inbox: pending requests only, enriched
// with the tenant's name and phone, newest first.
func (r *repository) ListPendingByAdmin(ctx context.Context, adminID uint) ([]RequestView, error) {
	var requests []UpdateRequest
	err := r.db.WithContext(ctx).
		Where("admin_id = ? AND status = ?", adminID, StatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		view := RequestView{UpdateRequest: req}
		var t tenant.Tenant
		if err := r.db.WithContext(ctx).Where("id = ?", req.TenantID).First(&t).Error; err == nil {
			view.TenantName = t.FullName
			view.TenantPhone = t.Phone
		}
		views = append(views, view)
	}
	return views, nil
}

// ListVisibleByTenant shows the tenant everything not dismissed, so they
// keep seeing requests the admin has acknowledged.
func (r *repository) ListVisibleByTenant(ctx context.Context, tenantID string) ([]UpdateRequest, error) {
	var requests []UpdateRequest
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status <> ?", tenantID, StatusDismissed).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
