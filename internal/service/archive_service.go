package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

// ArchiveService is the CRUD surface over the append-only commission archive,
// plus its tabular export.
type ArchiveService interface {
	Save(ctx context.Context, entry *model.CommissionArchive) error
	GetAll(ctx context.Context) ([]model.CommissionArchive, error)
	GetByID(ctx context.Context, id string) (*model.CommissionArchive, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	ExportCSV(entry *model.CommissionArchive) (string, error)
}

type archiveService struct {
	repo repository.ArchiveRepository
}

func NewArchiveService(repo repository.ArchiveRepository) ArchiveService {
	return &archiveService{repo: repo}
}

func (s *archiveService) Save(ctx context.Context, entry *model.CommissionArchive) error {
	if err := s.repo.Save(ctx, entry); err != nil {
		log.Warn().Err(err).Str("id", entry.ID).Msg("archive: save failed")
		return err
	}
	return nil
}

func (s *archiveService) GetAll(ctx context.Context) ([]model.CommissionArchive, error) {
	return s.repo.List(ctx)
}

func (s *archiveService) GetByID(ctx context.Context, id string) (*model.CommissionArchive, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *archiveService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *archiveService) ClearAll(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}

// ExportCSV flattens one archive entry into a BOM-prefixed, comma-separated,
// fully-quoted table. The output is byte-deterministic: vendors and rows keep
// their stored order, every number is fixed to 2 decimals, dates render as
// DD/MM/YYYY. Accounting tools on the office laptop expect exactly this shape.
func (s *archiveService) ExportCSV(entry *model.CommissionArchive) (string, error) {
	var tables []model.CommissionTable
	if err := json.Unmarshal([]byte(entry.Tables), &tables); err != nil {
		return "", fmt.Errorf("archive: corrupted tables payload: %w", err)
	}

	var b strings.Builder
	b.WriteString("\uFEFF") // UTF-8 BOM so Excel opens accents correctly

	writeRow(&b, "Session", entry.SessionName)
	writeRow(&b, "Période", frDate(entry.SessionStart)+" - "+frDate(entry.SessionEnd))
	writeRow(&b, "Archivé le", frDate(entry.ArchivedAt))
	b.WriteString("\n")

	grandTotal, totalSalary, netAPayer := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range tables {
		writeRow(&b, "Vendeuse", t.VendorName)
		writeRow(&b, "Taux de commission", fmt.Sprintf("%d%%", t.CommissionRate))
		writeRow(&b, "Date", "Chèque", "CB", "Espèces", "Total", "Seuil 1500 €", "Salaire")
		for _, row := range t.DailyRows {
			writeRow(&b,
				row.Date,
				row.Cheque.StringFixed(2),
				row.CB.StringFixed(2),
				row.Espece.StringFixed(2),
				row.Total.StringFixed(2),
				ouiNon(row.IsAboveThreshold),
				row.Salary.StringFixed(2),
			)
		}
		writeRow(&b, "Total", t.GrandTotal.StringFixed(2),
			"Salaires", t.TotalSalary.StringFixed(2),
			"Forfait logement", t.ForfaitLogement.StringFixed(2),
			"Net à payer", t.NetAPayer.StringFixed(2))
		b.WriteString("\n")

		grandTotal = grandTotal.Add(t.GrandTotal)
		totalSalary = totalSalary.Add(t.TotalSalary)
		netAPayer = netAPayer.Add(t.NetAPayer)
	}

	writeRow(&b, "Total général", grandTotal.StringFixed(2))
	writeRow(&b, "Total salaires", totalSalary.StringFixed(2))
	writeRow(&b, "Net à payer (toutes vendeuses)", netAPayer.StringFixed(2))

	return b.String(), nil
}

// writeRow writes one CSV line with every field double-quoted.
func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func frDate(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("02/01/2006")
}

func ouiNon(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}
