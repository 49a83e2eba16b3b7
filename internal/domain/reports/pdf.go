package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"skillsaudit/internal/domain/employees"
)

// employeeTableLimit caps the snapshot table; larger organizations get
// the first page's worth plus a note about the remainder.
const employeeTableLimit = 20

func renderAuditReport(title string, params Params, staff []employees.Employee, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Filters: %s", describeParams(params)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 8, "Employee Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(55, 8, "Job Title", "1", 0, "L", false, 0, "")
	pdf.CellFormat(65, 8, "Email", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	limit := len(staff)
	if limit > employeeTableLimit {
		limit = employeeTableLimit
	}
	for _, e := range staff[:limit] {
		pdf.CellFormat(60, 7, e.FullName(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, e.JobTitle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 7, e.Email, "1", 1, "L", false, 0, "")
	}

	if len(staff) > employeeTableLimit {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 6, fmt.Sprintf("Showing first %d of %d employees.", employeeTableLimit, len(staff)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func describeParams(params Params) string {
	orDash := func(v string) string {
		if v == "" {
			return "-"
		}
		return v
	}
	return fmt.Sprintf("type %s, position/role %s, date range %s",
		orDash(params.ReportType), orDash(params.PositionOrRole), orDash(params.DateRange))
}
