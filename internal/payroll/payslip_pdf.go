package payroll

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// PayslipWriter renders payroll entries as PDF payslips under a base
// directory.
type PayslipWriter struct {
	baseDir string
}

func NewPayslipWriter(baseDir string) *PayslipWriter {
	if baseDir == "" {
		baseDir = "storage/payslips"
	}
	return &PayslipWriter{baseDir: baseDir}
}

// Write renders one entry's payslip and returns the file path.
func (w *PayslipWriter) Write(batchNumber string, entry PayrollEntry) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create payslip dir: %w", err)
	}

	filePath := filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.pdf", batchNumber, entry.NationalID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Comprobante de Nomina")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Lote: %s", batchNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Empleado: %s", entry.EmployeeName))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Cedula: %s", entry.NationalID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Tipo de contrato: %s", entry.EmploymentType))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Quincena: %s", entry.Period))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 7, "Concepto", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Horas", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Valor hora", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "%", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range entry.Lines {
		totalUnit, _ := line.TotalUnitRate.Float64()
		pct, _ := line.SurchargePct.Float64()
		subtotal, _ := line.Subtotal.Float64()
		pdf.CellFormat(70, 7, line.DisplayName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.2f", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", totalUnit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.1f", pct), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", subtotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	gross, _ := entry.Gross.Float64()
	allowance, _ := entry.Allowance.Float64()
	health, _ := entry.Health.Float64()
	pension, _ := entry.Pension.Float64()
	debt, _ := entry.Debt.Float64()
	deductions, _ := entry.Deductions.Float64()
	net, _ := entry.Net.Float64()

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Auxilio de transporte: %.2f", allowance))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total bruto: %.2f", gross))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Deduccion salud: %.2f", health))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Deduccion pension: %.2f", pension))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Deuda consumos: %.2f", debt))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total deducciones: %.2f", deductions))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Neto a pagar: %.2f", net))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("write payslip pdf: %w", err)
	}

	return filePath, nil
}
