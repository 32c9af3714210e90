package rent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/internal/tenant"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&room.Room{}, &tenant.Tenant{}, &RentEntry{}, &auditlog.AuditLog{},
	))
	return db
}

func newTestService(db *gorm.DB) Service {
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	return NewService(NewRepository(db), auditSvc)
}

var phoneSeq int

func seedTenant(t *testing.T, db *gorm.DB, adminID uint, moveIn time.Time) tenant.Tenant {
	t.Helper()
	phoneSeq++
	tn := tenant.Tenant{
		ID:           uuid.NewString(),
		AdminID:      adminID,
		FullName:     fmt.Sprintf("Tenant %d", phoneSeq),
		Phone:        fmt.Sprintf("90000000%02d", phoneSeq),
		PasswordHash: "x",
		MoveInDate:   &moveIn,
	}
	require.NoError(t, db.Create(&tn).Error)
	return tn
}

func seedRoom(t *testing.T, db *gorm.DB, adminID uint, tenantID *string, price float64) room.Room {
	t.Helper()
	rm := room.Room{
		AdminID:  adminID,
		TenantID: tenantID,
		Name:     fmt.Sprintf("Room %d", phoneSeq),
		Floor:    "1",
		Price:    price,
		Occupied: tenantID != nil,
	}
	require.NoError(t, db.Create(&rm).Error)
	return rm
}

func seedPair(t *testing.T, db *gorm.DB, adminID uint, price float64) (room.Room, tenant.Tenant) {
	t.Helper()
	tn := seedTenant(t, db, adminID, testNow.AddDate(0, -3, 0))
	rm := seedRoom(t, db, adminID, &tn.ID, price)
	return rm, tn
}

func TestGenerateEntriesIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, tn := seedPair(t, db, 1, 4500)

	res, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, "Successfully created 1 rent entry.", res.Message)

	var entry RentEntry
	require.NoError(t, db.Where("room_id = ? AND tenant_id = ?", rm.ID, tn.ID).First(&entry).Error)
	assert.Equal(t, 4500.0, entry.RoomCost)
	assert.Equal(t, 4500.0, entry.TotalCost)
	assert.Equal(t, 0.0, entry.ElectricityCost)
	assert.Equal(t, StatusUnpaid, entry.PaymentStatus)
	assert.True(t, entry.BillingMonth.Equal(PeriodStart(testNow)))

	// Second run in the same period is a no-op.
	res, err = svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, "No new rent entries were needed.", res.Message)

	var count int64
	require.NoError(t, db.Model(&RentEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateEntriesCarryForward(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, tn := seedPair(t, db, 1, 4500)

	prev := RentEntry{
		RoomID:           rm.ID,
		TenantID:         tn.ID,
		AdminID:          1,
		BillingMonth:     PreviousPeriodStart(testNow),
		RoomCost:         4500,
		ElectricityCost:  880,
		ElectricityUnits: 175,
		MaintenanceCost:  200,
		TotalCost:        5580,
		PaidAmount:       5580,
		PaymentStatus:    StatusPaid,
	}
	require.NoError(t, db.Create(&prev).Error)

	res, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	var entry RentEntry
	require.NoError(t, db.
		Where("room_id = ? AND billing_month = ?", rm.ID, PeriodStart(testNow)).
		First(&entry).Error)
	assert.Equal(t, 175.0, entry.ElectricityUnits, "meter reading carries forward")
	assert.Equal(t, 200.0, entry.MaintenanceCost, "maintenance carries forward")
	assert.Equal(t, 0.0, entry.ElectricityCost, "cost starts at zero until a new reading arrives")
	assert.Equal(t, 4700.0, entry.TotalCost)
	assert.Equal(t, StatusUnpaid, entry.PaymentStatus)
}

func TestGenerateEntriesMaintenanceFallback(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	// Admin 1 has billing history with a known maintenance cost.
	rmA, tnA := seedPair(t, db, 1, 4500)
	require.NoError(t, db.Create(&RentEntry{
		RoomID: rmA.ID, TenantID: tnA.ID, AdminID: 1,
		BillingMonth:    PreviousPeriodStart(testNow),
		RoomCost:        4500,
		MaintenanceCost: 200,
		TotalCost:       4700,
		PaymentStatus:   StatusPaid,
		PaidAmount:      4700,
	}).Error)

	// A brand-new pair under the same admin and one under a fresh admin.
	rmB, _ := seedPair(t, db, 1, 3000)
	rmC, _ := seedPair(t, db, 2, 5000)

	res, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)
	require.Equal(t, 3, res.Created)

	var entryB, entryC RentEntry
	require.NoError(t, db.Where("room_id = ?", rmB.ID).First(&entryB).Error)
	require.NoError(t, db.Where("room_id = ?", rmC.ID).First(&entryC).Error)

	assert.Equal(t, 200.0, entryB.MaintenanceCost, "first bill borrows the admin's last maintenance cost")
	assert.Equal(t, 3200.0, entryB.TotalCost)

	assert.Equal(t, 0.0, entryC.MaintenanceCost, "admin with no history defaults to zero")
	assert.Equal(t, 5000.0, entryC.TotalCost)
}

func TestGenerateEntriesSkipsUnbillableRooms(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	tn := seedTenant(t, db, 1, testNow.AddDate(0, -1, 0))
	seedRoom(t, db, 1, &tn.ID, 0)  // zero price
	seedRoom(t, db, 1, nil, 4500)  // vacant

	res, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
}

func TestListForAdminCarryOver(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, tn := seedPair(t, db, 1, 4500)

	prev := RentEntry{
		RoomID: rm.ID, TenantID: tn.ID, AdminID: 1,
		BillingMonth:     PreviousPeriodStart(testNow),
		RoomCost:         4500,
		ElectricityUnits: 175,
		TotalCost:        4500,
		PaidAmount:       2000,
		PaymentStatus:    StatusPartial,
	}
	require.NoError(t, db.Create(&prev).Error)

	_, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)

	views, err := svc.ListForAdmin(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, views, 2, "unpaid previous period carries over")

	var currentView *RentView
	for i := range views {
		if views[i].Month == PeriodLabel(PeriodStart(testNow)) {
			currentView = &views[i]
		}
	}
	require.NotNil(t, currentView)
	assert.Equal(t, 175.0, currentView.PrevElectricityUnits)
	assert.Equal(t, tn.FullName, currentView.Tenant.FullName)
	assert.Equal(t, rm.Name, currentView.Room.Name)

	// Settling the previous month drops it from the list entirely.
	require.NoError(t, db.Model(&RentEntry{}).
		Where("id = ?", prev.ID).
		Updates(map[string]interface{}{"paid_amount": 4500, "payment_status": StatusPaid}).Error)

	views, err = svc.ListForAdmin(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, PeriodLabel(PeriodStart(testNow)), views[0].Month)
}

func TestListUpcoming(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	tn := seedTenant(t, db, 1, testNow) // moved in this period
	rm := seedRoom(t, db, 1, &tn.ID, 4500)

	upcoming, err := svc.ListUpcoming(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, tn.ID, upcoming[0].Tenant.ID)
	require.Len(t, upcoming[0].Rooms, 1)
	assert.Equal(t, rm.ID, upcoming[0].Rooms[0].ID)
	assert.Equal(t, 4500.0, upcoming[0].TotalCost)

	// Once billed the tenant is no longer upcoming.
	_, err = svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)

	upcoming, err = svc.ListUpcoming(ctx, 1, testNow)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestListForTenant(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, tn := seedPair(t, db, 1, 4500)

	require.NoError(t, db.Create(&RentEntry{
		RoomID: rm.ID, TenantID: tn.ID, AdminID: 1,
		BillingMonth:  PreviousPeriodStart(testNow),
		RoomCost:      4500,
		TotalCost:     4500,
		PaymentStatus: StatusUnpaid,
	}).Error)

	_, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)

	views, err := svc.ListForTenant(ctx, tn.ID, testNow)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, PeriodLabel(PeriodStart(testNow)), views[0].Month, "newest period first")
	assert.Equal(t, PeriodLabel(PreviousPeriodStart(testNow)), views[1].Month)
}

func TestUpdateEntry(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, _ := seedPair(t, db, 1, 4500)

	_, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)

	var entry RentEntry
	require.NoError(t, db.Where("room_id = ?", rm.ID).First(&entry).Error)

	req := UpdateRentRequest{
		RoomID:           rm.ID,
		RoomCost:         4600,
		ElectricityCost:  880,
		ElectricityUnits: 285,
		MaintenanceCost:  0,
		PaidAmount:       2000,
	}
	require.NoError(t, svc.UpdateEntry(ctx, 1, entry.ID, req, "127.0.0.1"))

	var updated RentEntry
	require.NoError(t, db.First(&updated, entry.ID).Error)
	assert.Equal(t, 5480.0, updated.TotalCost, "total is re-derived from components")
	assert.Equal(t, StatusPartial, updated.PaymentStatus, "status comes from the fresh total")

	var updatedRoom room.Room
	require.NoError(t, db.First(&updatedRoom, rm.ID).Error)
	assert.Equal(t, 4600.0, updatedRoom.Price, "room cost propagates to the room's price")
}

func TestUpdateEntryAuthorization(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, _ := seedPair(t, db, 1, 4500)

	_, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)

	var entry RentEntry
	require.NoError(t, db.Where("room_id = ?", rm.ID).First(&entry).Error)

	req := UpdateRentRequest{RoomID: rm.ID, RoomCost: 4500}

	// Another admin cannot tell this entry apart from a missing one.
	err = svc.UpdateEntry(ctx, 2, entry.ID, req, "")
	assert.ErrorIs(t, err, ErrNotFound)

	// A room id that does not match the entry is rejected the same way.
	req.RoomID = rm.ID + 1
	err = svc.UpdateEntry(ctx, 1, entry.ID, req, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Full cycle for one tenancy: bill, record a meter reading, settle, roll
// into the next month.
func TestBillingCycleEndToEnd(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	rm, tn := seedPair(t, db, 1, 4500)

	_, err := svc.GenerateEntries(ctx, testNow)
	require.NoError(t, err)

	var entry RentEntry
	require.NoError(t, db.Where("room_id = ?", rm.ID).First(&entry).Error)

	// Admin enters a first reading of 100 units at 8/unit.
	cost := ComputeElectricityCost(8, 0, 100)
	require.Equal(t, 800.0, cost)

	req := UpdateRentRequest{
		RoomID:           rm.ID,
		RoomCost:         4500,
		ElectricityCost:  cost,
		ElectricityUnits: 100,
		PaidAmount:       0,
	}
	require.NoError(t, svc.UpdateEntry(ctx, 1, entry.ID, req, ""))

	require.NoError(t, db.First(&entry, entry.ID).Error)
	assert.Equal(t, 5300.0, entry.TotalCost)
	assert.Equal(t, StatusUnpaid, entry.PaymentStatus)

	// Tenant settles in full.
	req.PaidAmount = 5300
	require.NoError(t, svc.UpdateEntry(ctx, 1, entry.ID, req, ""))
	require.NoError(t, db.First(&entry, entry.ID).Error)
	assert.Equal(t, StatusPaid, entry.PaymentStatus)

	// Next month's bill starts from this month's meter reading.
	nextMonth := testNow.AddDate(0, 1, 0)
	res, err := svc.GenerateEntries(ctx, nextMonth)
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	var next RentEntry
	require.NoError(t, db.
		Where("room_id = ? AND billing_month = ?", rm.ID, PeriodStart(nextMonth)).
		First(&next).Error)
	assert.Equal(t, 100.0, next.ElectricityUnits)
	assert.Equal(t, 0.0, next.ElectricityCost, "cost resets each period")

	// The settled June bill no longer shows for the tenant in July.
	views, err := svc.ListForTenant(ctx, tn.ID, nextMonth)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, PeriodLabel(PeriodStart(nextMonth)), views[0].Month)
}
