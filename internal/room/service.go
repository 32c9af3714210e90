package room

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/auditlog"
)

var (
	// ErrNotFound covers both a missing room and a room owned by another
	// admin; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("room not found or unauthorized")
	ErrOccupied = errors.New("room is occupied")
)

type Service interface {
	Create(ctx context.Context, adminID uint, req CreateRoomRequest, ip string) (*Room, error)
	List(ctx context.Context, adminID uint) ([]Room, error)
	Get(ctx context.Context, adminID, roomID uint) (*Room, error)
	Update(ctx context.Context, adminID, roomID uint, req UpdateRoomRequest, ip string) (*Room, error)
	Delete(ctx context.Context, adminID, roomID uint, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, adminID uint, req CreateRoomRequest, ip string) (*Room, error) {
	room := &Room{
		AdminID: adminID,
		Name:    req.Name,
		Floor:   req.Floor,
		Price:   req.Price,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "ROOM_CREATE_FAILED", map[string]interface{}{
			"room_name": req.Name,
			"error":     err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &adminID, "ROOM_CREATED", map[string]interface{}{
		"room_id":   room.ID,
		"room_name": room.Name,
		"floor":     room.Floor,
		"price":     room.Price,
	}, ip, "success")

	return room, nil
}

func (s *service) List(ctx context.Context, adminID uint) ([]Room, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

func (s *service) Get(ctx context.Context, adminID, roomID uint) (*Room, error) {
	room, err := s.repo.GetOwnedByAdmin(ctx, roomID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *service) Update(ctx context.Context, adminID, roomID uint, req UpdateRoomRequest, ip string) (*Room, error) {
	room, err := s.Get(ctx, adminID, roomID)
	if err != nil {
		return nil, err
	}

	room.Name = req.Name
	room.Floor = req.Floor
	room.Price = req.Price

	if err := s.repo.Update(ctx, room); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "ROOM_UPDATE_FAILED", map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &adminID, "ROOM_UPDATED", map[string]interface{}{
		"room_id": room.ID,
		"price":   room.Price,
	}, ip, "success")

	return room, nil
}

func (s *service) Delete(ctx context.Context, adminID, roomID uint, ip string) error {
	room, err := s.Get(ctx, adminID, roomID)
	if err != nil {
		return err
	}

	if room.Occupied || room.TenantID != nil {
		return ErrOccupied
	}

	if err := s.repo.Delete(ctx, roomID); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "ROOM_DELETE_FAILED", map[string]interface{}{
			"room_id": roomID,
			"error":   err.Error(),
		}, ip, "failure")
		return err
	}

	s.auditSvc.LogAction(ctx, &adminID, "ROOM_DELETED", map[string]interface{}{
		"room_id":   roomID,
		"room_name": room.Name,
	}, ip, "success")

	return nil
}
