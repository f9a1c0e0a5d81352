package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/infra"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

// ReportWorker renders an archived RAZ snapshot to PDF and emails it to the
// back office. Runs inside the pool, after the reset already completed — a
// failure here retries and eventually lands in the DLQ, never in the UI.
type ReportWorker struct {
	historyRepo repository.HistoryRepository
	mailer      *infra.Mailer
	storagePath string
	defaultTo   string
}

func NewReportWorker(historyRepo repository.HistoryRepository, mailer *infra.Mailer, storagePath, defaultTo string) *ReportWorker {
	return &ReportWorker{
		historyRepo: historyRepo,
		mailer:      mailer,
		storagePath: storagePath,
		defaultTo:   defaultTo,
	}
}

func (w *ReportWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var job RAZReportJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("report: bad payload: %w", err)
	}

	entry, err := w.historyRepo.FindByID(ctx, job.HistoryID)
	if err != nil {
		return fmt.Errorf("report: history entry %q: %w", job.HistoryID, err)
	}

	pdfPath, err := infra.GenerateRAZReportPDF(entry, w.storagePath)
	if err != nil {
		return err
	}

	to := job.To
	if to == "" {
		to = w.defaultTo
	}
	if to == "" {
		log.Warn().Str("history_id", job.HistoryID).Msg("report: no recipient configured, email skipped")
		return nil
	}

	body := "Rapport de fin de session en pièce jointe."
	if entry.EmailContent != nil && *entry.EmailContent != "" {
		body = *entry.EmailContent
	}
	subject := fmt.Sprintf("Feuille de caisse — %s", entry.SessionName)
	if err := w.mailer.SendRAZReport(to, subject, body, pdfPath); err != nil {
		return fmt.Errorf("report: send: %w", err)
	}
	log.Info().Str("history_id", job.HistoryID).Str("to", to).Msg("report: RAZ report sent")
	return nil
}
