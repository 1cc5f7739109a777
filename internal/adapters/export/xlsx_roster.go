package export

import (
	"delivery-ops-service/internal/domain"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Drivers"

var rosterHeader = []string{"Name", "Email", "CDL", "CDL Number", "CDL Expires", "Status", "Created"}

// XLSXRosterExporter writes the driver roster as an Excel workbook.
type XLSXRosterExporter struct{}

func (XLSXRosterExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRosterExporter) FileExtension() string { return "xlsx" }

func (XLSXRosterExporter) WriteRoster(w io.Writer, drivers []*domain.DriverProfile) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile always starts with "Sheet1".
	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return fmt.Errorf("export roster: rename sheet: %w", err)
	}

	for i, h := range rosterHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export roster: header cell: %w", err)
		}
		if err := f.SetCellValue(rosterSheet, cell, h); err != nil {
			return fmt.Errorf("export roster: write header: %w", err)
		}
	}

	for i, d := range drivers {
		row := []any{
			d.FullName(),
			d.Email,
			cdlLabel(d),
			deref(d.CDLNumber),
			deref(d.CDLExpirationDate),
			statusLabel(d),
			d.CreatedAt.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export roster: row cell: %w", err)
		}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return fmt.Errorf("export roster: write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export roster: write workbook: %w", err)
	}

	return nil
}

func cdlLabel(d *domain.DriverProfile) string {
	if d.HasCDL {
		return "CDL"
	}
	return "No CDL"
}

func statusLabel(d *domain.DriverProfile) string {
	if d.IsActive {
		return "Active"
	}
	return "Inactive"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
