package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"seniorcare-lead-api/internal/client"
	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/metrics"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	DestinationInline = "inline"
	DestinationS3     = "s3"

	defaultColumnWidth = 18
)

// ErrStorageUnavailable is returned when an upload is requested but no
// object storage is configured.
var ErrStorageUnavailable = errors.New("export storage is not configured")

// Column is one exported grid column
type Column struct {
	Header string
	Width  float64
}

// Sheet is a rendered grid: one header row followed by the data rows.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]interface{}
}

// GridExporter renders grids to xlsx and optionally publishes them to
// object storage.
type GridExporter struct {
	storage client.ObjectStorage
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewGridExporter creates a GridExporter. storage may be nil, in which case
// every export is returned inline.
func NewGridExporter(storage client.ObjectStorage, m *metrics.Metrics, logger *zap.Logger) *GridExporter {
	return &GridExporter{storage: storage, metrics: m, logger: logger, now: time.Now}
}

// StorageEnabled reports whether exports can be uploaded.
func (e *GridExporter) StorageEnabled() bool {
	return e != nil && e.storage != nil
}

// Export renders sheet and delivers it to destination ("", "inline" or "s3").
func (e *GridExporter) Export(ctx context.Context, spaceID uuid.UUID, grid string, sheet Sheet, destination string) (*dto.ExportResult, error) {
	if destination == DestinationS3 && !e.StorageEnabled() {
		return nil, ErrStorageUnavailable
	}
	if destination == "" {
		destination = DestinationInline
		if e.StorageEnabled() {
			destination = DestinationS3
		}
	}

	body, err := Render(sheet)
	if err != nil {
		return nil, err
	}

	result := &dto.ExportResult{
		FileName:    fmt.Sprintf("%s-%s.xlsx", grid, e.now().UTC().Format("20060102-150405")),
		ContentType: ContentTypeXLSX,
		Rows:        len(sheet.Rows),
	}

	if destination == DestinationInline {
		result.Body = body
		e.metrics.IncrementExport(grid, DestinationInline)
		return result, nil
	}

	key := e.storage.GenerateExportKey(spaceID, grid, ".xlsx")
	if err := e.storage.UploadFile(ctx, key, bytes.NewReader(body), ContentTypeXLSX); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}
	url, err := e.storage.PresignDownload(ctx, key, result.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}
	result.Key = key
	result.URL = url

	e.metrics.IncrementExport(grid, DestinationS3)
	e.logger.Info("Grid exported",
		zap.String("grid", grid),
		zap.String("space_id", spaceID.String()),
		zap.String("key", key),
		zap.Int("rows", result.Rows),
	)
	return result, nil
}

// Render writes sheet into a single-sheet xlsx workbook.
func Render(sheet Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	index, err := f.NewSheet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(name, cell, col.Header); err != nil {
			return nil, fmt.Errorf("failed to set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header %s: %w", cell, err)
		}

		width := col.Width
		if width <= 0 {
			width = defaultColumnWidth
		}
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, letter, letter, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Date formats an optional time for a cell.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
