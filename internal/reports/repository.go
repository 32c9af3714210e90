package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/internal/rent"
)

type Repository interface {
	RentRowsForPeriod(ctx context.Context, adminID uint, periodStart time.Time) ([]RentRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) RentRowsForPeriod(ctx context.Context, adminID uint, periodStart time.Time) ([]RentRow, error) {
	var rows []struct {
		TenantName       string
		RoomName         string
		Floor            string
		RoomCost         float64
		ElectricityCost  float64
		ElectricityUnits float64
		MaintenanceCost  float64
		TotalCost        float64
		PaidAmount       float64
		PaymentStatus    string
	}

	err := r.db.WithContext(ctx).
		Table("rent_entries").
		Select(`tenants.full_name AS tenant_name,
			rooms.name AS room_name,
			rooms.floor AS floor,
			rent_entries.room_cost,
			rent_entries.electricity_cost,
			rent_entries.electricity_units,
			rent_entries.maintenance_cost,
			rent_entries.total_cost,
			rent_entries.paid_amount,
			rent_entries.payment_status`).
		Joins("JOIN rooms ON rooms.id = rent_entries.room_id").
		Joins("JOIN tenants ON tenants.id = rent_entries.tenant_id").
		Where("rent_entries.admin_id = ? AND rent_entries.billing_month = ?", adminID, periodStart).
		Order("rooms.floor, rooms.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	month := rent.PeriodLabel(periodStart)
	result := make([]RentRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, RentRow{
			TenantName:       row.TenantName,
			RoomName:         row.RoomName,
			Floor:            row.Floor,
			Month:            month,
			RoomCost:         row.RoomCost,
			ElectricityCost:  row.ElectricityCost,
			ElectricityUnits: row.ElectricityUnits,
			MaintenanceCost:  row.MaintenanceCost,
			TotalCost:        row.TotalCost,
			PaidAmount:       row.PaidAmount,
			PaymentStatus:    row.PaymentStatus,
		})
	}
	return result, nil
}
