package updaterequest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/tenant"
)

var (
	ErrNotFound       = errors.New("update request not found")
	ErrInvalidStatus  = errors.New("status must be acknowledged or dismissed")
	ErrTerminalStatus = errors.New("request is already in a terminal status")
)

type Service interface {
	Create(ctx context.Context, tenantID, message string) (*UpdateRequest, error)
	Transition(ctx context.Context, adminID uint, id, status string) (*UpdateRequest, error)
	Withdraw(ctx context.Context, tenantID, id string) (*UpdateRequest, error)
	ListForAdmin(ctx context.Context, adminID uint) ([]RequestView, error)
	ListForTenant(ctx context.Context, tenantID string) ([]UpdateRequest, error)
}

type service struct {
	repo       Repository
	tenantRepo tenant.Repository
}

func NewService(repo Repository, tenantRepo tenant.Repository) Service {
	return &service{repo: repo, tenantRepo: tenantRepo}
}

// Create opens a pending request from the tenant to their admin. The admin
// is resolved from the tenant row; the message is optional.
func (s *service) Create(ctx context.Context, tenantID, message string) (*UpdateRequest, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	req := &UpdateRequest{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		AdminID:  t.AdminID,
		Message:  message,
		Status:   StatusPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Transition moves a pending request to acknowledged or dismissed on behalf
// of the admin it is addressed to; a request addressed to another admin is
// indistinguishable from a missing one. Requests already in a terminal
// status are rejected, never silently rewritten.
func (s *service) Transition(ctx context.Context, adminID uint, id, status string) (*UpdateRequest, error) {
	if status != StatusAcknowledged && status != StatusDismissed {
		return nil, ErrInvalidStatus
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.AdminID != adminID {
		return nil, ErrNotFound
	}
	if req.Status != StatusPending {
		return nil, ErrTerminalStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	req.Status = status
	return req, nil
}

// Withdraw dismisses the tenant's own pending request. Dismissal is the
// only transition a tenant may make; acknowledging is the admin's side of
// the exchange.
func (s *service) Withdraw(ctx context.Context, tenantID, id string) (*UpdateRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.TenantID != tenantID {
		return nil, ErrNotFound
	}
	if req.Status != StatusPending {
		return nil, ErrTerminalStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusDismissed); err != nil {
		return nil, err
	}

	req.Status = StatusDismissed
	return req, nil
}

func (s *service) ListForAdmin(ctx context.Context, adminID uint) ([]RequestView, error) {
	return s.repo.ListPendingByAdmin(ctx, adminID)
}

func (s *service) ListForTenant(ctx context.Context, tenantID string) ([]UpdateRequest, error) {
	return s.repo.ListVisibleByTenant(ctx, tenantID)
}
