package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-payroll/internal/employee"

	"github.com/jung-kurt/gofpdf"
)

// Amounts are stored in the smallest currency unit; render as major units.
func formatAmount(v int64) string {
	return fmt.Sprintf("%d.%02d", v/100, v%100)
}

func writePayslipPDF(dir string, p *Payroll, emp *employee.Employee) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, p.ID.String()+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", emp.FirstName, emp.LastName, emp.EmployeeNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", time.Month(p.Month).String(), p.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %s", formatAmount(p.BaseSalary)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", formatAmount(p.Allowances)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", formatAmount(p.Deductions)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %s", formatAmount(p.NetSalary)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", p.Status))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}

	return path, nil
}
