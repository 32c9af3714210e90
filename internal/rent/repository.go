package rent

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/internal/tenant"
)

type Repository interface {
	// Generator reads
	ListOccupiedRooms(ctx context.Context) ([]room.Room, error)
	GetByRoomTenantPeriod(ctx context.Context, roomID uint, tenantID string, periodStart time.Time) (*RentEntry, error)
	GetLatestForPair(ctx context.Context, roomID uint, tenantID string) (*RentEntry, error)
	GetLatestForAdmin(ctx context.Context, adminID uint) (*RentEntry, error)
	Create(ctx context.Context, entry *RentEntry) error

	// Query paths
	ListOccupiedRoomIDsByAdmin(ctx context.Context, adminID uint) ([]uint, error)
	ListByRoomsAndPeriod(ctx context.Context, roomIDs []uint, periodStart time.Time) ([]RentEntry, error)
	AnyUnpaidInPeriod(ctx context.Context, roomIDs []uint, periodStart time.Time) (bool, error)
	ListForTenant(ctx context.Context, tenantID string, currentStart, prevStart time.Time) ([]RentEntry, error)
	PrevElectricityUnitsForRoom(ctx context.Context, roomID uint, before time.Time) (float64, error)
	PrevElectricityUnitsForTenant(ctx context.Context, tenantID string, before time.Time) (float64, error)
	UpcomingTenants(ctx context.Context, adminID uint, periodStart, periodEnd time.Time) ([]tenant.Tenant, error)
	RoomsByTenant(ctx context.Context, tenantID string) ([]room.Room, error)

	// Enrichment lookups
	TenantsByIDs(ctx context.Context, ids []string) (map[string]tenant.Tenant, error)
	RoomsByIDs(ctx context.Context, ids []uint) (map[uint]room.Room, error)

	// Mutation
	GetOwnedByAdmin(ctx context.Context, entryID, adminID uint) (*RentEntry, error)
	UpdateEntryAndRoomPrice(ctx context.Context, entry *RentEntry, roomPrice float64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) ListOccupiedRooms(ctx context.Context) ([]room.Room, error) {
	var rooms []room.Room
	err := r.db.WithContext(ctx).
		Where("occupied = ? AND tenant_id IS NOT NULL", true).
		Find(&rooms).Error
	return rooms, err
}

func (r *repository) GetByRoomTenantPeriod(ctx context.Context, roomID uint, tenantID string, periodStart time.Time) (*RentEntry, error) {
	var entry RentEntry
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND tenant_id = ? AND billing_month = ?", roomID, tenantID, periodStart).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetLatestForPair returns the most recent entry for the exact (room, tenant)
// pair regardless of how old it is; the carry-forward source.
func (r *repository) GetLatestForPair(ctx context.Context, roomID uint, tenantID string) (*RentEntry, error) {
	var entry RentEntry
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND tenant_id = ?", roomID, tenantID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetLatestForAdmin returns the admin's most recent entry across all rooms,
// used as the global maintenance-cost fallback for first-time pairs.
func (r *repository) GetLatestForAdmin(ctx context.Context, adminID uint) (*RentEntry, error) {
	var entry RentEntry
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Create(ctx context.Context, entry *RentEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListOccupiedRoomIDsByAdmin(ctx context.Context, adminID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&room.Room{}).
		Where("admin_id = ? AND occupied = ? AND tenant_id IS NOT NULL", adminID, true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) ListByRoomsAndPeriod(ctx context.Context, roomIDs []uint, periodStart time.Time) ([]RentEntry, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var entries []RentEntry
	err := r.db.WithContext(ctx).
		Where("room_id IN ? AND billing_month = ?", roomIDs, periodStart).
		Find(&entries).Error
	return entries, err
}

func (r *repository) AnyUnpaidInPeriod(ctx context.Context, roomIDs []uint, periodStart time.Time) (bool, error) {
	if len(roomIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RentEntry{}).
		Where("room_id IN ? AND billing_month = ? AND payment_status <> ?", roomIDs, periodStart, StatusPaid).
		Count(&count).Error
	return count > 0, err
}

// ListForTenant fetches the tenant's current-period entries plus any
// not-yet-paid entries from the previous period, newest period first.
func (r *repository) ListForTenant(ctx context.Context, tenantID string, currentStart, prevStart time.Time) ([]RentEntry, error) {
	var entries []RentEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(
			r.db.Where("billing_month >= ? AND payment_status <> ?", prevStart, StatusPaid).
				Or("billing_month >= ?", currentStart),
		).
		Order("billing_month DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) PrevElectricityUnitsForRoom(ctx context.Context, roomID uint, before time.Time) (float64, error) {
	var entry RentEntry
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND billing_month < ?", roomID, before).
		Order("billing_month DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return entry.ElectricityUnits, nil
}

func (r *repository) PrevElectricityUnitsForTenant(ctx context.Context, tenantID string, before time.Time) (float64, error) {
	var entry RentEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND billing_month < ?", tenantID, before).
		Order("billing_month DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return entry.ElectricityUnits, nil
}

// UpcomingTenants returns tenants who moved in during the given period and
// have no rent entry anywhere yet.
func (r *repository) UpcomingTenants(ctx context.Context, adminID uint, periodStart, periodEnd time.Time) ([]tenant.Tenant, error) {
	var tenants []tenant.Tenant
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Where("move_in_date >= ? AND move_in_date < ?", periodStart, periodEnd).
		Where("NOT EXISTS (SELECT 1 FROM rent_entries WHERE rent_entries.tenant_id = tenants.id)").
		Find(&tenants).Error
	return tenants, err
}

func (r *repository) RoomsByTenant(ctx context.Context, tenantID string) ([]room.Room, error) {
	var rooms []room.Room
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&rooms).Error
	return rooms, err
}

func (r *repository) TenantsByIDs(ctx context.Context, ids []string) (map[string]tenant.Tenant, error) {
	result := make(map[string]tenant.Tenant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var tenants []tenant.Tenant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tenants).Error; err != nil {
		return nil, err
	}
	for _, t := range tenants {
		result[t.ID] = t
	}
	return result, nil
}

func (r *repository) RoomsByIDs(ctx context.Context, ids []uint) (map[uint]room.Room, error) {
	result := make(map[uint]room.Room, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rooms []room.Room
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, err
	}
	for _, rm := range rooms {
		result[rm.ID] = rm
	}
	return result, nil
}

func (r *repository) GetOwnedByAdmin(ctx context.Context, entryID, adminID uint) (*RentEntry, error) {
	var entry RentEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", entryID, adminID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntryAndRoomPrice commits the rent-row rewrite and the room-price
// propagation as one transaction; a reader never sees one without the other.
func (r *repository) UpdateEntryAndRoomPrice(ctx context.Context, entry *RentEntry, roomPrice float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		return tx.Model(&room.Room{}).
			Where("id = ?", entry.RoomID).
			Update("price", roomPrice).Error
	})
}
