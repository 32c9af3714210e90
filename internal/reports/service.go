package reports

import (
	"context"
	"errors"
	"time"

	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/rent"
)

var ErrBadMonth = errors.New("month must be in YYYY-MM format")

// Service builds rent sheets and exports them through the exporter.
type Service interface {
	RentSheet(ctx context.Context, adminID uint, month string) ([]RentRow, error)
	ExportRentSheet(ctx context.Context, adminID uint, month, format, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, exporter Exporter, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

// resolvePeriod maps an optional YYYY-MM month to a billing period start.
// An empty month means the current billing period.
func resolvePeriod(month string) (time.Time, string, error) {
	if month == "" {
		start := rent.PeriodStart(time.Now())
		return start, rent.PeriodLabel(start), nil
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, "", ErrBadMonth
	}
	start := rent.PeriodStart(t.AddDate(0, 0, 14))
	return start, month, nil
}

func (s *service) RentSheet(ctx context.Context, adminID uint, month string) ([]RentRow, error) {
	periodStart, _, err := resolvePeriod(month)
	if err != nil {
		return nil, err
	}
	return s.repo.RentRowsForPeriod(ctx, adminID, periodStart)
}

func (s *service) ExportRentSheet(ctx context.Context, adminID uint, month, format, ip string) ([]byte, string, string, error) {
	periodStart, label, err := resolvePeriod(month)
	if err != nil {
		return nil, "", "", err
	}

	rows, err := s.repo.RentRowsForPeriod(ctx, adminID, periodStart)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.Export(format, label, rows)
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &adminID, "RENT_SHEET_EXPORTED", map[string]interface{}{
		"month":  label,
		"format": format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, contentType, nil
}
