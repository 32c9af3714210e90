package tenant

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/utils"
)

func setupTenantService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&room.Room{}, &Tenant{}, &auditlog.AuditLog{}))

	storage, err := utils.NewLocalStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	return NewService(NewRepository(db), storage, auditSvc), db
}

func seedVacantRoom(t *testing.T, db *gorm.DB, adminID uint, name string, price float64) room.Room {
	t.Helper()
	rm := room.Room{AdminID: adminID, Name: name, Floor: "1", Price: price}
	require.NoError(t, db.Create(&rm).Error)
	return rm
}

func TestCreateClaimsRooms(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	rm := seedVacantRoom(t, db, 1, "101", 4000)

	tn, err := svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Rooms:    []RoomAssignment{{ID: rm.ID, Price: 4500}},
	}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, tn.ID)

	// Initial password is the phone number, stored hashed.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tn.PasswordHash), []byte("9876543210")))

	var claimed room.Room
	require.NoError(t, db.First(&claimed, rm.ID).Error)
	assert.True(t, claimed.Occupied)
	require.NotNil(t, claimed.TenantID)
	assert.Equal(t, tn.ID, *claimed.TenantID)
	assert.Equal(t, 4500.0, claimed.Price, "assignment price overrides the listed price")
}

func TestCreateValidation(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	rm := seedVacantRoom(t, db, 1, "101", 4000)

	_, err := svc.Create(ctx, 1, CreateTenantInput{Phone: "9", Rooms: []RoomAssignment{{ID: rm.ID}}}, "")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Create(ctx, 1, CreateTenantInput{FullName: "A", Phone: "9"}, "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Asha", Phone: "9876543210",
		Rooms: []RoomAssignment{{ID: rm.ID, Price: 4000}},
	}, "")
	require.NoError(t, err)

	rm2 := seedVacantRoom(t, db, 1, "102", 4000)
	_, err = svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Other", Phone: "9876543210",
		Rooms: []RoomAssignment{{ID: rm2.ID, Price: 4000}},
	}, "")
	assert.ErrorIs(t, err, ErrPhoneInUse)
}

func TestGetIsScopedToAdmin(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	rm := seedVacantRoom(t, db, 1, "101", 4000)
	tn, err := svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Asha", Phone: "9876543210",
		Rooms: []RoomAssignment{{ID: rm.ID, Price: 4000}},
	}, "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, tn.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, 1, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, tn.ID, got.ID)
}

func TestUpdateReassignsRooms(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	rmA := seedVacantRoom(t, db, 1, "101", 4000)
	rmB := seedVacantRoom(t, db, 1, "102", 5000)

	tn, err := svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Asha", Phone: "9876543210",
		Rooms: []RoomAssignment{{ID: rmA.ID, Price: 4000}},
	}, "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, tn.ID, UpdateTenantInput{
		Rooms: []RoomAssignment{{ID: rmB.ID, Price: 5200}},
	}, "")
	require.NoError(t, err)

	var oldRoom, newRoom room.Room
	require.NoError(t, db.First(&oldRoom, rmA.ID).Error)
	require.NoError(t, db.First(&newRoom, rmB.ID).Error)

	assert.False(t, oldRoom.Occupied, "vacated room is freed")
	assert.Nil(t, oldRoom.TenantID)
	assert.True(t, newRoom.Occupied)
	assert.Equal(t, 5200.0, newRoom.Price)
}

func TestUpdateWithoutRoomsKeepsAssignments(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	rm := seedVacantRoom(t, db, 1, "101", 4000)
	tn, err := svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Asha", Phone: "9876543210",
		Rooms: []RoomAssignment{{ID: rm.ID, Price: 4000}},
	}, "")
	require.NoError(t, err)

	// A field-only edit carries no rooms slice; occupancy must survive it.
	updated, err := svc.Update(ctx, 1, tn.ID, UpdateTenantInput{Phone: "9876543211"}, "")
	require.NoError(t, err)
	assert.Equal(t, "9876543211", updated.Phone)

	var kept room.Room
	require.NoError(t, db.First(&kept, rm.ID).Error)
	assert.True(t, kept.Occupied, "room must stay assigned")
	require.NotNil(t, kept.TenantID)
	assert.Equal(t, tn.ID, *kept.TenantID)

	// An explicit empty assignment list is a deliberate move-out.
	_, err = svc.Update(ctx, 1, tn.ID, UpdateTenantInput{Rooms: []RoomAssignment{}}, "")
	require.NoError(t, err)

	var freed room.Room
	require.NoError(t, db.First(&freed, rm.ID).Error)
	assert.False(t, freed.Occupied)
	assert.Nil(t, freed.TenantID)
}

func TestDeleteFreesRoomsAndArchivesFiles(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	rm := seedVacantRoom(t, db, 1, "101", 4000)
	tn, err := svc.Create(ctx, 1, CreateTenantInput{
		FullName: "Asha", Phone: "9876543210",
		Rooms: []RoomAssignment{{ID: rm.ID, Price: 4000}},
	}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, tn.ID, ""))

	var count int64
	require.NoError(t, db.Model(&Tenant{}).Count(&count).Error)
	assert.Zero(t, count)

	var freed room.Room
	require.NoError(t, db.First(&freed, rm.ID).Error)
	assert.False(t, freed.Occupied)
	assert.Nil(t, freed.TenantID)

	err = svc.Delete(ctx, 1, tn.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
