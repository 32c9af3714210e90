package reports

// RentRow is one line of the exported rent sheet: a rent entry joined with
// its tenant and room display fields.
type RentRow struct {
	TenantName       string  `json:"tenant_name"`
	RoomName         string  `json:"room_name"`
	Floor            string  `json:"floor"`
	Month            string  `json:"month"`
	RoomCost         float64 `json:"room_cost"`
	ElectricityCost  float64 `json:"electricity_cost"`
	ElectricityUnits float64 `json:"electricity_units"`
	MaintenanceCost  float64 `json:"maintenance_cost"`
	TotalCost        float64 `json:"total_cost"`
	PaidAmount       float64 `json:"paid_amount"`
	PaymentStatus    string  `json:"payment_status"`
}

const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)
