package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/config"
	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/tenant"
)

var (
	ErrPhoneRegistered    = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest, ip string) (*Admin, string, error)
	Login(ctx context.Context, req LoginRequest, ip string) (*LoginResult, error)
	GetProfile(ctx context.Context, adminID uint) (*Admin, error)
	CheckPassword(ctx context.Context, adminID uint, password string) error
	ChangePassword(ctx context.Context, adminID uint, req ChangePasswordRequest, ip string) error
	DeleteAccount(ctx context.Context, adminID uint, ip string) error
}

type service struct {
	repo       Repository
	tenantRepo tenant.Repository
	auditSvc   auditlog.Service
	secret     string
	ttl        time.Duration
}

func NewService(repo Repository, tenantRepo tenant.Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	return &service{
		repo:       repo,
		tenantRepo: tenantRepo,
		auditSvc:   auditSvc,
		secret:     cfg.JWTSecret,
		ttl:        time.Duration(cfg.JWTTTLHours) * time.Hour,
	}
}

func (s *service) signToken(id, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *service) Register(ctx context.Context, req RegisterRequest, ip string) (*Admin, string, error) {
	if _, err := s.repo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, "", ErrPhoneRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	admin := &Admin{
		FullName:     req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		HomeName:     req.HomeName,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		s.auditSvc.LogAction(ctx, nil, "ADMIN_REGISTER_FAILED", map[string]interface{}{
			"phone": req.Phone,
			"error": err.Error(),
		}, ip, "failure")
		return nil, "", err
	}

	token, err := s.signToken(strconv.FormatUint(uint64(admin.ID), 10), RoleAdmin)
	if err != nil {
		return nil, "", err
	}

	s.auditSvc.LogAction(ctx, &admin.ID, "ADMIN_REGISTERED", map[string]interface{}{
		"phone": admin.Phone,
	}, ip, "success")

	return admin, token, nil
}

// Login resolves the phone first as an admin, then as a tenant. Both kinds
// of credential are bcrypt hashes compared the same way.
func (s *service) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResult, error) {
	admin, err := s.repo.GetByPhone(ctx, req.Phone)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
			s.auditSvc.LogAction(ctx, &admin.ID, "ADMIN_LOGIN_FAILED", map[string]interface{}{
				"phone": req.Phone,
			}, ip, "failure")
			return nil, ErrInvalidCredentials
		}

		token, err := s.signToken(strconv.FormatUint(uint64(admin.ID), 10), RoleAdmin)
		if err != nil {
			return nil, err
		}

		s.auditSvc.LogAction(ctx, &admin.ID, "ADMIN_LOGIN", nil, ip, "success")
		return &LoginResult{Token: token, Role: RoleAdmin, AdminID: admin.ID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t, err := s.tenantRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(t.ID, RoleTenant)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Role: RoleTenant, TenantID: t.ID}, nil
}

func (s *service) GetProfile(ctx context.Context, adminID uint) (*Admin, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *service) CheckPassword(ctx context.Context, adminID uint, password string) error {
	admin, err := s.GetProfile(ctx, adminID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *service) ChangePassword(ctx context.Context, adminID uint, req ChangePasswordRequest, ip string) error {
	if err := s.CheckPassword(ctx, adminID, req.OldPassword); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "PASSWORD_CHANGE_FAILED", nil, ip, "failure")
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &adminID, "PASSWORD_CHANGED", nil, ip, "success")
	return nil
}

func (s *service) DeleteAccount(ctx context.Context, adminID uint, ip string) error {
	if _, err := s.GetProfile(ctx, adminID); err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, adminID); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "ACCOUNT_DELETE_FAILED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.auditSvc.LogAction(ctx, &adminID, "ACCOUNT_DELETED", nil, ip, "success")
	return nil
}
