package updaterequest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/internal/tenant"
)

func setupService(t *testing.T) (Service, *gorm.DB, tenant.Tenant) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&room.Room{}, &tenant.Tenant{}, &UpdateRequest{}))

	tn := tenant.Tenant{
		ID:           uuid.NewString(),
		AdminID:      7,
		FullName:     "Asha Rao",
		Phone:        "9000000001",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&tn).Error)

	tenantRepo := tenant.NewRepository(db)
	return NewService(NewRepository(db), tenantRepo), db, tn
}

func TestCreateResolvesAdminFromTenant(t *testing.T) {
	svc, _, tn := setupService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, tn.ID, "meter reading looks wrong")
	require.NoError(t, err)
	assert.Equal(t, uint(7), req.AdminID)
	assert.Equal(t, StatusPending, req.Status)
	assert.NotEmpty(t, req.ID)
}

func TestCreateUnknownTenant(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Create(context.Background(), uuid.NewString(), "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransition(t *testing.T) {
	svc, _, tn := setupService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, tn.ID, "")
	require.NoError(t, err)

	got, err := svc.Transition(ctx, 7, req.ID, StatusAcknowledged)
	require.NoError(t, err)
	assert.Equal(t, StatusAcknowledged, got.Status)

	// Terminal states never transition again, not even to themselves.
	_, err = svc.Transition(ctx, 7, req.ID, StatusDismissed)
	assert.ErrorIs(t, err, ErrTerminalStatus)
	_, err = svc.Transition(ctx, 7, req.ID, StatusAcknowledged)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestTransitionIsScopedToAddressedAdmin(t *testing.T) {
	svc, db, tn := setupService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, tn.ID, "")
	require.NoError(t, err)

	// A request addressed to admin 7 looks missing to any other admin.
	_, err = svc.Transition(ctx, 8, req.ID, StatusAcknowledged)
	assert.ErrorIs(t, err, ErrNotFound)

	var stored UpdateRequest
	require.NoError(t, db.Where("id = ?", req.ID).First(&stored).Error)
	assert.Equal(t, StatusPending, stored.Status)

	_, err = svc.Transition(ctx, 7, req.ID, StatusAcknowledged)
	assert.NoError(t, err)
}

func TestWithdraw(t *testing.T) {
	svc, db, tn := setupService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, tn.ID, "please recheck the meter")
	require.NoError(t, err)

	got, err := svc.Withdraw(ctx, tn.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDismissed, got.Status)

	var stored UpdateRequest
	require.NoError(t, db.Where("id = ?", req.ID).First(&stored).Error)
	assert.Equal(t, StatusDismissed, stored.Status)

	// Withdrawn means terminal for the admin too.
	_, err = svc.Transition(ctx, 7, req.ID, StatusAcknowledged)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestWithdrawIsScopedToOwningTenant(t *testing.T) {
	svc, _, tn := setupService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, tn.ID, "")
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, uuid.NewString(), req.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Once acknowledged, the tenant can no longer withdraw.
	_, err = svc.Transition(ctx, 7, req.ID, StatusAcknowledged)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, tn.ID, req.ID)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestTransitionValidation(t *testing.T) {
	svc, _, tn := setupService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, tn.ID, "")
	require.NoError(t, err)

	_, err = svc.Transition(ctx, 7, req.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.Transition(ctx, 7, req.ID, "resolved")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Transition(ctx, 7, uuid.NewString(), StatusDismissed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTenantVisibility(t *testing.T) {
	svc, _, tn := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, tn.ID, "first")
	require.NoError(t, err)
	b, err := svc.Create(ctx, tn.ID, "second")
	require.NoError(t, err)

	_, err = svc.Transition(ctx, 7, a.ID, StatusAcknowledged)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, 7, b.ID, StatusDismissed)
	require.NoError(t, err)

	// Dismissed requests disappear from the tenant's mailbox, but the
	// admin inbox only ever shows pending ones.
	visible, err := svc.ListForTenant(ctx, tn.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, a.ID, visible[0].ID)

	pending, err := svc.ListForAdmin(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
