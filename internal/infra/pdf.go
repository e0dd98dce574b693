package infra

// pdf.go — service order receipt generation using go-pdf/fpdf.
// Generates an A4 receipt with the company header, client block, the item
// table (name, quantity, unit price, line total), displacement cost and a
// bold grand total.
//
// The output file is saved to storagePath/os_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/gutoberny/BernyFlow/internal/model"
)

// GenerateOrderPDF renders the receipt for a completed service order.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateOrderPDF(o *model.ServiceOrder, companyName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("os_%d.pdf", o.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, companyName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Ordem de Servico #%d", o.Number), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Client block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	clientName := ""
	if o.Client != nil {
		clientName = o.Client.Name
	}
	pdf.CellFormat(contentW, 5, "Cliente: "+clientName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "Data: "+o.StartDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if o.EndDate != nil {
		pdf.CellFormat(contentW, 4, "Conclusao: "+o.EndDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // item name
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unitario", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	// ── Item rows ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, item := range o.Items {
		name := ""
		switch {
		case item.Product != nil:
			name = item.Product.Name
		case item.Service != nil:
			name = item.Service.Name
		}
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, item.Quantity.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "R$ "+item.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	if !o.DisplacementCost.IsZero() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(col1+col2+col3, 5, "Deslocamento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 5, "R$ "+o.DisplacementCost.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "R$ "+o.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment ──────────────────────────────────────────────────────────────
	if o.PaymentMethod != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		label := "Pagamento: " + *o.PaymentMethod
		if o.PaymentType != nil {
			label += " (" + string(*o.PaymentType) + ")"
		}
		pdf.CellFormat(contentW, 5, label, "", 1, "L", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Obrigado pela preferencia!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
