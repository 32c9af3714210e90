package tenant

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/utils"
)

var (
	// ErrNotFound covers both a missing tenant and a tenant owned by
	// another admin; callers must not be able to tell the two apart.
	ErrNotFound       = errors.New("tenant not found or unauthorized")
	ErrPhoneInUse     = errors.New("phone number already in use")
	ErrMissingFields  = errors.New("missing required fields or no rooms selected")
	removedDocsFolder = "removed"
)

type Service interface {
	Create(ctx context.Context, adminID uint, in CreateTenantInput, ip string) (*Tenant, error)
	List(ctx context.Context, adminID uint) ([]Tenant, error)
	Get(ctx context.Context, adminID uint, tenantID string) (*Tenant, error)
	GetRooms(ctx context.Context, adminID uint, tenantID string) ([]room.Room, error)
	Update(ctx context.Context, adminID uint, tenantID string, in UpdateTenantInput, ip string) (*Tenant, error)
	Delete(ctx context.Context, adminID uint, tenantID string, ip string) error
}

type service struct {
	repo     Repository
	storage  utils.Storage
	auditSvc auditlog.Service
}

func NewService(repo Repository, storage utils.Storage, auditSvc auditlog.Service) Service {
	return &service{repo: repo, storage: storage, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, adminID uint, in CreateTenantInput, ip string) (*Tenant, error) {
	if in.FullName == "" || in.Phone == "" || len(in.Rooms) == 0 {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.GetByPhone(ctx, in.Phone); err == nil {
		return nil, ErrPhoneInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The tenant's initial password is their phone number; hashed like
	// every other credential in the system.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Phone), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	t := &Tenant{
		ID:           uuid.NewString(),
		AdminID:      adminID,
		FullName:     in.FullName,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		MoveInDate:   in.MoveInDate,
		PhotoURL:     in.PhotoURL,
		DocAadhar:    in.Documents.Aadhar,
		DocPan:       in.Documents.Pan,
		DocVoter:     in.Documents.Voter,
		DocLicense:   in.Documents.License,
		DocPolice:    in.Documents.Police,
		DocAgreement: in.Documents.Agreement,
	}

	if err := s.repo.CreateWithRooms(ctx, t, in.Rooms); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "TENANT_CREATE_FAILED", map[string]interface{}{
			"full_name": in.FullName,
			"error":     err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &adminID, "TENANT_CREATED", map[string]interface{}{
		"tenant_id": t.ID,
		"full_name": t.FullName,
		"rooms":     len(in.Rooms),
	}, ip, "success")

	return t, nil
}

func (s *service) List(ctx context.Context, adminID uint) ([]Tenant, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

func (s *service) Get(ctx context.Context, adminID uint, tenantID string) (*Tenant, error) {
	t, err := s.repo.GetOwnedByAdmin(ctx, tenantID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *service) GetRooms(ctx context.Context, adminID uint, tenantID string) ([]room.Room, error) {
	if _, err := s.Get(ctx, adminID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.RoomsByTenant(ctx, tenantID)
}

func (s *service) Update(ctx context.Context, adminID uint, tenantID string, in UpdateTenantInput, ip string) (*Tenant, error) {
	t, err := s.Get(ctx, adminID, tenantID)
	if err != nil {
		return nil, err
	}

	if in.Phone != "" && in.Phone != t.Phone {
		if _, err := s.repo.GetByPhone(ctx, in.Phone); err == nil {
			return nil, ErrPhoneInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		t.Phone = in.Phone
	}
	if in.FullName != "" {
		t.FullName = in.FullName
	}
	if in.MoveInDate != nil {
		t.MoveInDate = in.MoveInDate
	}
	if in.MoveOutDate != nil {
		t.MoveOutDate = in.MoveOutDate
	}
	if in.PhotoURL != nil {
		t.PhotoURL = *in.PhotoURL
	}
	if in.Documents != nil {
		t.DocAadhar = in.Documents.Aadhar
		t.DocPan = in.Documents.Pan
		t.DocVoter = in.Documents.Voter
		t.DocLicense = in.Documents.License
		t.DocPolice = in.Documents.Police
		t.DocAgreement = in.Documents.Agreement
	}

	if err := s.repo.UpdateWithRooms(ctx, t, in.Rooms); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "TENANT_UPDATE_FAILED", map[string]interface{}{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &adminID, "TENANT_UPDATED", map[string]interface{}{
		"tenant_id": t.ID,
		"rooms":     len(in.Rooms),
	}, ip, "success")

	return t, nil
}

// Delete frees the tenant's rooms, removes the row, and moves their stored
// files into a holding folder rather than destroying them.
func (s *service) Delete(ctx context.Context, adminID uint, tenantID string, ip string) error {
	t, err := s.Get(ctx, adminID, tenantID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteWithRooms(ctx, t); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "TENANT_DELETE_FAILED", map[string]interface{}{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}, ip, "failure")
		return err
	}

	for _, url := range []string{
		t.PhotoURL, t.DocAadhar, t.DocPan, t.DocVoter,
		t.DocLicense, t.DocPolice, t.DocAgreement,
	} {
		if url == "" {
			continue
		}
		if _, err := s.storage.MoveToFolder(url, removedDocsFolder); err != nil {
			log.Printf("tenant delete: failed to move %s: %v", url, err)
		}
	}

	s.auditSvc.LogAction(ctx, &adminID, "TENANT_DELETED", map[string]interface{}{
		"tenant_id": t.ID,
		"full_name": t.FullName,
	}, ip, "success")

	return nil
}
