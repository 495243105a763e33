// Package export writes the registered-users spreadsheet.
package export

import (
	"errors"
	"fmt"
	"time"

	"registration-service/internal/registration"

	"github.com/xuri/excelize/v2"
)

// ErrNoRecords is returned when there is nothing to export; no file is
// produced in that case.
var ErrNoRecords = errors.New("no registrations to export")

// SheetName is the single worksheet holding all records.
const SheetName = "Registered Users"

var headers = []interface{}{
	"S.No", "Name", "Email ID", "Phone Number", "Roll Number", "Programme",
	"Department", "Emergency Contact Name", "Emergency Contact Phone",
	"Registration Date", "Created At",
}

var columnWidths = []float64{5, 25, 30, 15, 15, 12, 20, 25, 20, 15, 15}

// Filename derives the download name from the given day.
func Filename(now time.Time) string {
	return fmt.Sprintf("Registered_Users_%s.xlsx", now.Format("2006-01-02"))
}

// Workbook builds the spreadsheet: one header row plus one row per record in
// the order given.
func Workbook(regs []registration.Registration) (*excelize.File, error) {
	if len(regs) == 0 {
		return nil, ErrNoRecords
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, err
	}

	for i, reg := range regs {
		roll := "N/A"
		if reg.RollNumber != nil {
			roll = *reg.RollNumber
		}
		row := []interface{}{
			i + 1,
			reg.Name,
			reg.PersonalEmail,
			reg.Mobile,
			roll,
			reg.Programme,
			reg.Branch,
			reg.EmergencyContactName,
			reg.EmergencyContactPhone,
			reg.Date,
			reg.CreatedAt.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(regs []registration.Registration, path string) error {
	f, err := Workbook(regs)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
