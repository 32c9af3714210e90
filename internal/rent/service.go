package rent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/auditlog"
)

// ErrNotFound covers both a missing entry and an entry owned by another
// admin; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("rent entry not found or unauthorized")

type Service interface {
	GenerateEntries(ctx context.Context, now time.Time) (GenerateResult, error)
	ListForAdmin(ctx context.Context, adminID uint, now time.Time) ([]RentView, error)
	ListUpcoming(ctx context.Context, adminID uint, now time.Time) ([]UpcomingRent, error)
	ListForTenant(ctx context.Context, tenantID string, now time.Time) ([]RentView, error)
	UpdateEntry(ctx context.Context, adminID, entryID uint, req UpdateRentRequest, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

// GenerateEntries creates at most one rent entry per occupied (room, tenant)
// pair for the period containing now. It is idempotent within a period and
// never aborts the batch over a single bad room; both the scheduler and the
// manual admin trigger call it with identical semantics.
func (s *service) GenerateEntries(ctx context.Context, now time.Time) (GenerateResult, error) {
	periodStart := PeriodStart(now)

	occupied, err := s.repo.ListOccupiedRooms(ctx)
	if err != nil {
		return GenerateResult{}, err
	}

	created := 0
	for _, rm := range occupied {
		// Occupancy should guarantee these, but one bad row must not
		// crash the batch.
		if rm.TenantID == nil || *rm.TenantID == "" || rm.Price <= 0 {
			continue
		}
		tenantID := *rm.TenantID

		if _, err := s.repo.GetByRoomTenantPeriod(ctx, rm.ID, tenantID, periodStart); err == nil {
			continue // already billed this period
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("rent generator: existence check failed for room %d: %v", rm.ID, err)
			continue
		}

		electricityUnits := 0.0
		maintenanceCost := 0.0

		prev, err := s.repo.GetLatestForPair(ctx, rm.ID, tenantID)
		switch {
		case err == nil:
			electricityUnits = prev.ElectricityUnits
			maintenanceCost = prev.MaintenanceCost
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First bill for this pair: borrow the admin's last known
			// maintenance cost from any room, else leave it at zero.
			if last, err := s.repo.GetLatestForAdmin(ctx, rm.AdminID); err == nil {
				maintenanceCost = last.MaintenanceCost
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("rent generator: maintenance fallback failed for room %d: %v", rm.ID, err)
				continue
			}
		default:
			log.Printf("rent generator: carry-forward lookup failed for room %d: %v", rm.ID, err)
			continue
		}

		entry := &RentEntry{
			RoomID:           rm.ID,
			TenantID:         tenantID,
			AdminID:          rm.AdminID,
			BillingMonth:     periodStart,
			RoomCost:         rm.Price,
			ElectricityCost:  0,
			ElectricityUnits: electricityUnits,
			MaintenanceCost:  maintenanceCost,
			TotalCost:        rm.Price + maintenanceCost,
			PaidAmount:       0,
			PaymentStatus:    StatusUnpaid,
		}

		if err := s.repo.Create(ctx, entry); err != nil {
			log.Printf("rent generator: create failed for room %d: %v", rm.ID, err)
			continue
		}
		created++
	}

	result := GenerateResult{Created: created}
	if created == 0 {
		result.Message = "No new rent entries were needed."
	} else if created == 1 {
		result.Message = "Successfully created 1 rent entry."
	} else {
		result.Message = fmt.Sprintf("Successfully created %d rent entries.", created)
	}

	s.auditSvc.LogAction(ctx, nil, "RENT_ENTRIES_GENERATED", map[string]interface{}{
		"billing_month": PeriodLabel(periodStart),
		"created":       created,
	}, "", "success")

	return result, nil
}

// ListForAdmin returns the admin's current-period entries, plus all
// previous-period entries while at least one of them is still not paid.
// The carry-over is all-or-nothing for the previous period.
func (s *service) ListForAdmin(ctx context.Context, adminID uint, now time.Time) ([]RentView, error) {
	currentStart := PeriodStart(now)
	prevStart := PreviousPeriodStart(now)

	roomIDs, err := s.repo.ListOccupiedRoomIDsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if len(roomIDs) == 0 {
		return []RentView{}, nil
	}

	entries, err := s.repo.ListByRoomsAndPeriod(ctx, roomIDs, currentStart)
	if err != nil {
		return nil, err
	}

	carryOver, err := s.repo.AnyUnpaidInPeriod(ctx, roomIDs, prevStart)
	if err != nil {
		return nil, err
	}
	if carryOver {
		prevEntries, err := s.repo.ListByRoomsAndPeriod(ctx, roomIDs, prevStart)
		if err != nil {
			return nil, err
		}
		entries = append(entries, prevEntries...)
	}

	return s.buildViews(ctx, entries, false)
}

// ListUpcoming surfaces tenants who moved in during the current period and
// have not been billed yet, projected as the sum of their rooms' prices.
func (s *service) ListUpcoming(ctx context.Context, adminID uint, now time.Time) ([]UpcomingRent, error) {
	periodStart := PeriodStart(now)
	periodEnd := PeriodEnd(now)

	tenants, err := s.repo.UpcomingTenants(ctx, adminID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	result := make([]UpcomingRent, 0, len(tenants))
	for _, t := range tenants {
		rooms, err := s.repo.RoomsByTenant(ctx, t.ID)
		if err != nil {
			return nil, err
		}

		upcoming := UpcomingRent{
			Tenant: TenantInfo{ID: t.ID, FullName: t.FullName, PhotoURL: t.PhotoURL},
		}
		for _, rm := range rooms {
			upcoming.Rooms = append(upcoming.Rooms, UpcomingRoom{
				ID:        rm.ID,
				Name:      rm.Name,
				Floor:     rm.Floor,
				TotalCost: rm.Price,
			})
			upcoming.TotalCost += rm.Price
		}
		result = append(result, upcoming)
	}

	return result, nil
}

// ListForTenant applies the same carry-forward-until-paid rule from the
// tenant's point of view, newest period first.
func (s *service) ListForTenant(ctx context.Context, tenantID string, now time.Time) ([]RentView, error) {
	currentStart := PeriodStart(now)
	prevStart := PreviousPeriodStart(now)

	entries, err := s.repo.ListForTenant(ctx, tenantID, currentStart, prevStart)
	if err != nil {
		return nil, err
	}

	return s.buildViews(ctx, entries, true)
}

func (s *service) buildViews(ctx context.Context, entries []RentEntry, byTenant bool) ([]RentView, error) {
	tenantIDs := make([]string, 0, len(entries))
	roomIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		tenantIDs = append(tenantIDs, e.TenantID)
		roomIDs = append(roomIDs, e.RoomID)
	}

	tenants, err := s.repo.TenantsByIDs(ctx, tenantIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := s.repo.RoomsByIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	views := make([]RentView, 0, len(entries))
	for _, e := range entries {
		var prevUnits float64
		if byTenant {
			prevUnits, err = s.repo.PrevElectricityUnitsForTenant(ctx, e.TenantID, e.BillingMonth)
		} else {
			prevUnits, err = s.repo.PrevElectricityUnitsForRoom(ctx, e.RoomID, e.BillingMonth)
		}
		if err != nil {
			return nil, err
		}

		view := RentView{
			ID:                   e.ID,
			Month:                PeriodLabel(e.BillingMonth),
			RoomCost:             e.RoomCost,
			ElectricityCost:      e.ElectricityCost,
			ElectricityUnits:     e.ElectricityUnits,
			PrevElectricityUnits: prevUnits,
			MaintenanceCost:      e.MaintenanceCost,
			TotalCost:            e.TotalCost,
			PaidAmount:           e.PaidAmount,
			PaymentStatus:        e.PaymentStatus,
		}
		if t, ok := tenants[e.TenantID]; ok {
			view.Tenant = TenantInfo{ID: t.ID, FullName: t.FullName, PhotoURL: t.PhotoURL}
		} else {
			view.Tenant = TenantInfo{ID: e.TenantID}
		}
		if rm, ok := rooms[e.RoomID]; ok {
			view.Room = RoomInfo{ID: rm.ID, Name: rm.Name, Floor: rm.Floor}
		} else {
			view.Room = RoomInfo{ID: e.RoomID}
		}
		views = append(views, view)
	}

	return views, nil
}

// UpdateEntry overwrites the cost fields and paid amount, re-derives the
// stored total from the new components, recomputes the payment status from
// that fresh total, and propagates the room cost onto the room's current
// price, all in one transaction.
func (s *service) UpdateEntry(ctx context.Context, adminID, entryID uint, req UpdateRentRequest, ip string) error {
	entry, err := s.repo.GetOwnedByAdmin(ctx, entryID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if entry.RoomID != req.RoomID {
		return ErrNotFound
	}

	entry.RoomCost = req.RoomCost
	entry.ElectricityCost = req.ElectricityCost
	entry.ElectricityUnits = req.ElectricityUnits
	entry.MaintenanceCost = req.MaintenanceCost
	entry.PaidAmount = req.PaidAmount
	entry.TotalCost = req.RoomCost + req.ElectricityCost + req.MaintenanceCost
	entry.PaymentStatus = PaymentStatus(entry.TotalCost, entry.PaidAmount)

	if err := s.repo.UpdateEntryAndRoomPrice(ctx, entry, req.RoomCost); err != nil {
		s.auditSvc.LogAction(ctx, &adminID, "RENT_UPDATE_FAILED", map[string]interface{}{
			"rent_id": entryID,
			"error":   err.Error(),
		}, ip, "failure")
		return err
	}

	s.auditSvc.LogAction(ctx, &adminID, "RENT_UPDATED", map[string]interface{}{
		"rent_id":        entry.ID,
		"room_id":        entry.RoomID,
		"total_cost":     entry.TotalCost,
		"paid_amount":    entry.PaidAmount,
		"payment_status": entry.PaymentStatus,
	}, ip, "success")

	return nil
}
