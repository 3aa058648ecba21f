package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
	"github.com/sharath018/potluck-rsvp-backend/internal/quota"
)

type ReportService interface {
	Export(ctx context.Context, req ExportRequest, actor auditlog.Actor) (*ExportFile, error)
}

type reportService struct {
	source   RowSource
	exporter Exporter
	auditSvc auditlog.Service
	loc      *time.Location
	now      func() time.Time
}

func NewReportService(source RowSource, exporter Exporter, auditSvc auditlog.Service, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{source: source, exporter: exporter, auditSvc: auditSvc, loc: loc, now: time.Now}
}

func (s *reportService) Export(ctx context.Context, req ExportRequest, actor auditlog.Actor) (*ExportFile, error) {
	if !ValidFormat(req.Format) {
		return nil, apperr.Invalid("format", "unsupported export format: "+req.Format)
	}

	now := s.now().In(s.loc)
	start, end, filtered, err := GetDateRange(req.DateRange, req.StartDate, req.EndDate, now)
	if err != nil {
		return nil, apperr.Invalid("date_range", err.Error())
	}

	rows, err := s.source.SignupRows(ctx)
	if err != nil {
		return nil, err
	}
	if filtered {
		rows = filterRows(rows, start, end)
	}

	file, err := s.exporter.Export(req.Format, rows, now)
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
	}
	if s.auditSvc != nil {
		_ = s.auditSvc.LogAction(ctx, actor, "", "REPORT_EXPORTED", map[string]interface{}{
			"format":     req.Format,
			"date_range": req.DateRange,
			"rows":       len(rows),
		}, status)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", req.Format, err)
	}
	return file, nil
}

func filterRows(rows []quota.SignupRow, start, end time.Time) []quota.SignupRow {
	out := make([]quota.SignupRow, 0, len(rows))
	for _, r := range rows {
		if r.CreatedAt.Before(start) || r.CreatedAt.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}
