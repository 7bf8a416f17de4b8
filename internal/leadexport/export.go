package leadexport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/internal/observability/metrics"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Filename returns the download name for an export taken at now, e.g.
// rollerup-leads-2026-03-14.csv. The date is the UTC calendar date.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("rollerup-leads-%s.%s", now.UTC().Format("2006-01-02"), ext)
}

// LeadReader is the read side of the lead store.
type LeadReader interface {
	Read(ctx context.Context) ([]leads.Lead, error)
}

// File is a rendered export ready to download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Count       int
}

// Exporter reads the store and renders exports.
type Exporter struct {
	reader  LeadReader
	logger  *logging.Logger
	metrics *metrics.LeadMetrics
	now     func() time.Time
}

// NewExporter creates an exporter over reader.
func NewExporter(reader LeadReader, logger *logging.Logger, m *metrics.LeadMetrics) *Exporter {
	if reader == nil {
		panic("leadexport: reader required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Exporter{reader: reader, logger: logger, metrics: m, now: time.Now}
}

// WithClock overrides the clock used for filenames.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	if now != nil {
		e.now = now
	}
	return e
}

// CSV renders every stored lead as CSV. An empty store yields an empty file.
func (e *Exporter) CSV(ctx context.Context) (File, error) {
	records, err := e.reader.Read(ctx)
	if err != nil {
		return File{}, fmt.Errorf("leadexport: read leads: %w", err)
	}
	out := File{
		Name:        Filename(e.now(), FormatCSV),
		ContentType: "text/csv",
		Data:        []byte(ToCSV(RowsFromLeads(records))),
		Count:       len(records),
	}
	e.metrics.ObserveExport(FormatCSV)
	e.logger.Info("leads exported", "format", FormatCSV, "count", out.Count)
	return out, nil
}

// XLSX renders every stored lead as a workbook.
func (e *Exporter) XLSX(ctx context.Context) (File, error) {
	records, err := e.reader.Read(ctx)
	if err != nil {
		return File{}, fmt.Errorf("leadexport: read leads: %w", err)
	}
	data, err := ToXLSX(RowsFromLeads(records))
	if err != nil {
		return File{}, err
	}
	out := File{
		Name:        Filename(e.now(), FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
		Count:       len(records),
	}
	e.metrics.ObserveExport(FormatXLSX)
	e.logger.Info("leads exported", "format", FormatXLSX, "count", out.Count)
	return out, nil
}

// WriteFile renders format and writes it into dir under its download name.
// It returns the written path.
func (e *Exporter) WriteFile(ctx context.Context, dir, format string) (string, error) {
	var (
		file File
		err  error
	)
	switch format {
	case FormatCSV:
		file, err = e.CSV(ctx)
	case FormatXLSX:
		file, err = e.XLSX(ctx)
	default:
		return "", fmt.Errorf("leadexport: unsupported format %q", format)
	}
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("leadexport: write %s: %w", path, err)
	}
	return path, nil
}
