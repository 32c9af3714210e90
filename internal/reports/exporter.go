package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a rent sheet in the requested format.
type Exporter interface {
	Export(format, month string, rows []RentRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

var rentHeaders = []string{
	"Tenant", "Room", "Floor", "Month", "Room Cost", "Electricity Cost",
	"Electricity Units", "Maintenance Cost", "Total Cost", "Paid Amount", "Status",
}

func rentRecord(r RentRow) []string {
	return []string{
		r.TenantName,
		r.RoomName,
		r.Floor,
		r.Month,
		fmt.Sprintf("%.2f", r.RoomCost),
		fmt.Sprintf("%.2f", r.ElectricityCost),
		fmt.Sprintf("%.2f", r.ElectricityUnits),
		fmt.Sprintf("%.2f", r.MaintenanceCost),
		fmt.Sprintf("%.2f", r.TotalCost),
		fmt.Sprintf("%.2f", r.PaidAmount),
		r.PaymentStatus,
	}
}

func (e *exporter) Export(format, month string, rows []RentRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		return e.exportExcel(month, rows)
	case FormatPDF:
		return e.exportPDF(month, rows)
	case FormatCSV, "":
		return e.exportCSV(month, rows)
	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *exporter) exportCSV(month string, rows []RentRow) ([]byte, string, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(rentHeaders); err != nil {
		return nil, "", "", err
	}
	for _, r := range rows {
		if err := w.Write(rentRecord(r)); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), fmt.Sprintf("rent_sheet_%s.csv", month), "text/csv", nil
}

func (e *exporter) exportExcel(month string, rows []RentRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Rent Sheet"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range rentHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		record := []interface{}{
			r.TenantName, r.RoomName, r.Floor, r.Month, r.RoomCost,
			r.ElectricityCost, r.ElectricityUnits, r.MaintenanceCost,
			r.TotalCost, r.PaidAmount, r.PaymentStatus,
		}
		for i, v := range record {
			cell, err := excelize.CoordinatesToCellName(i+1, rIdx+2)
			if err != nil {
				return nil, "", "", err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), fmt.Sprintf("rent_sheet_%s.xlsx", month),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *exporter) exportPDF(month string, rows []RentRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(60, 10, fmt.Sprintf("Rent Sheet %s", month))
	pdf.Ln(10)

	widths := []float64{40, 30, 15, 18, 24, 26, 26, 28, 22, 24, 20}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range rentHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		record := rentRecord(r)
		for i, v := range record {
			align := "R"
			if i < 4 || i == len(record)-1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), fmt.Sprintf("rent_sheet_%s.pdf", month), "application/pdf", nil
}
