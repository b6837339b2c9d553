/*
Package report renders balance statements as spreadsheets.

PURPOSE:
  Payroll wants a year of statements in a file they can open in Excel.
  WriteYearWorkbook lays out one row per month with the statement figures
  and a second sheet with the vacation and sick-leave position.

SHEETS:
  Statements    Month | Previous | Worked | Adjustments | Vacation |
                Sick leave | Holidays | Credited | Target | Month | Balance
  Entitlement   Vacation account summary, then per-month day counts

SEE ALSO:
  - worktime/statement.go: Statement figures
  - timeoff/entitlement.go: Day counts
*/
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
	"github.com/xuri/excelize/v2"
)

const (
	StatementSheet   = "Statements"
	EntitlementSheet = "Entitlement"
)

// Entitlement is the day-count side of a year report.
type Entitlement struct {
	Account  worktime.VacationAccount
	SickDays decimal.Decimal
	Months   []timeoff.MonthCounts
}

var statementHeaders = []string{
	"Month", "Previous balance", "Worked", "Adjustments", "Vacation credit",
	"Sick leave credit", "Holiday credit", "Total credited", "Target",
	"Monthly balance", "End of month balance",
}

// WriteYearWorkbook writes an xlsx workbook for one employee and year to w.
func WriteYearWorkbook(w io.Writer, employee worktime.Employee, statements []worktime.Statement, entitlement Entitlement) error {
	buf, err := BuildYearWorkbook(employee, statements, entitlement)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildYearWorkbook renders the workbook into memory.
func BuildYearWorkbook(employee worktime.Employee, statements []worktime.Statement, entitlement Entitlement) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(StatementSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeStatements(f, headerStyle, employee, statements); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(EntitlementSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeEntitlement(f, headerStyle, entitlement); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func writeStatements(f *excelize.File, headerStyle int, employee worktime.Employee, statements []worktime.Statement) error {
	sheet := StatementSheet
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "K", 16)

	title := employee.Name
	if title == "" {
		title = employee.ID
	}
	if len(statements) > 0 {
		title = fmt.Sprintf("%s - %d", title, statements[0].Year)
	}
	f.SetCellValue(sheet, "A1", title)
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	const headerRow = 3
	for i, label := range statementHeaders {
		c, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, c, label)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(statementHeaders), headerRow)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, st := range statements {
		row := headerRow + 1 + i
		values := []any{
			st.Month.String(),
			number(st.PreviousBalance),
			number(st.WorkedHours),
			number(st.Adjustments),
			number(st.VacationCreditHours),
			number(st.SickLeaveCreditHours),
			number(st.HolidayCreditHours),
			number(st.TotalCredited),
			number(st.TargetHours),
			number(st.MonthlyBalance),
			number(st.EndOfMonthBalance),
		}
		for col, v := range values {
			c, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, c, v); err != nil {
				return fmt.Errorf("failed to write %s: %w", c, err)
			}
		}
	}
	return nil
}

func writeEntitlement(f *excelize.File, headerStyle int, e Entitlement) error {
	sheet := EntitlementSheet
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "D", 12)

	summary := [][]any{
		{"Year", e.Account.Year},
		{"Vacation entitlement", number(e.Account.Entitlement)},
		{"Carried over", number(e.Account.CarriedOver)},
		{"Vacation taken", number(e.Account.Taken)},
		{"Vacation remaining", number(e.Account.Remaining)},
		{"Sick days", number(e.SickDays)},
	}
	for i, line := range summary {
		f.SetCellValue(sheet, cell(1, i+1), line[0])
		f.SetCellValue(sheet, cell(2, i+1), line[1])
	}

	headerRow := len(summary) + 2
	for i, label := range []string{"Month", "Vacation", "Sick", "Time off"} {
		f.SetCellValue(sheet, cell(i+1, headerRow), label)
	}
	if err := f.SetCellStyle(sheet, cell(1, headerRow), cell(4, headerRow), headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, m := range e.Months {
		row := headerRow + 1 + i
		f.SetCellValue(sheet, cell(1, row), m.Month.String())
		f.SetCellValue(sheet, cell(2, row), number(m.Vacation))
		f.SetCellValue(sheet, cell(3, row), number(m.Sick))
		f.SetCellValue(sheet, cell(4, row), number(m.TimeOff))
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// number converts to float64 for the cell; two decimals is plenty for hours.
func number(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
