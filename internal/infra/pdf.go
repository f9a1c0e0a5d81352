package infra

// pdf.go — RAZ report rendering using go-pdf/fpdf.
// One A4 page per snapshot: session header, payment-method totals, and the
// per-vendor day-of figures. Attached to the end-of-session email.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// GenerateRAZReportPDF renders one history entry to storagePath (created if
// needed) and returns the absolute path of the generated file.
func GenerateRAZReportPDF(entry *model.RAZHistoryEntry, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("raz_%s.pdf", entry.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Feuille de caisse — RAZ"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if entry.SessionName != "" {
		pdf.CellFormat(0, 6, tr("Session : "+entry.SessionName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Date : "+time.UnixMilli(entry.Date).Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr("Totaux du jour"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	totals := []struct{ label, value string }{
		{"Chiffre d'affaires", entry.TotalSales.StringFixed(2) + " EUR"},
		{"Espèces", entry.TotalCash.StringFixed(2) + " EUR"},
		{"Carte bancaire", entry.TotalCard.StringFixed(2) + " EUR"},
		{"Chèques", entry.TotalChecks.StringFixed(2) + " EUR"},
		{"Nombre de ventes", fmt.Sprintf("%d", entry.SalesCount)},
	}
	for _, t := range totals {
		pdf.CellFormat(80, 6, tr(t.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, t.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Per-vendor block ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr("Vendeuses"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, tr("Nom"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, tr("CA du jour"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr("CA cumulé"), "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, vs := range entry.VendorStats {
		pdf.CellFormat(80, 6, tr(vs.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, vs.DailySales.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, vs.TotalSales.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
