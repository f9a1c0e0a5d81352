package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

// HistoryService archives session results into the append-only RAZ history.
// Saving is strictly best-effort: a RAZ must be allowed to complete even when
// its archival fails, so SaveRAZToHistory never propagates an error.
type HistoryService interface {
	SaveRAZToHistory(ctx context.Context, req dto.RAZSnapshotRequest) *model.RAZHistoryEntry
	GetHistory(ctx context.Context) ([]model.RAZHistoryEntry, error)
	GetRAZByID(ctx context.Context, id string) (*model.RAZHistoryEntry, error)
	DeleteRAZ(ctx context.Context, id string) error
	CleanOldHistory(ctx context.Context, keepLast int) (int64, error)
	ExportHistoryAsJSON(ctx context.Context) string
}

type historyService struct {
	repo repository.HistoryRepository
	now  func() time.Time
}

func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo, now: time.Now}
}

// SaveRAZToHistory builds and appends one immutable snapshot. Totals are
// day-of figures: summing each vendor's DailySales rather than TotalSales,
// because the cumulative figure would double-count everything archived by
// prior resets. Returns the stored entry, or nil when archiving failed.
func (s *historyService) SaveRAZToHistory(ctx context.Context, req dto.RAZSnapshotRequest) *model.RAZHistoryEntry {
	totalSales := decimal.Zero
	for _, vs := range req.VendorStats {
		totalSales = totalSales.Add(vs.DailySales)
	}

	totalCash, totalCard, totalChecks := decimal.Zero, decimal.Zero, decimal.Zero
	activeSales := 0
	for _, sale := range req.Sales {
		if sale.Canceled {
			continue
		}
		activeSales++
		switch sale.PaymentMethod {
		case "cash":
			totalCash = totalCash.Add(sale.TotalAmount)
		case "card":
			totalCard = totalCard.Add(sale.TotalAmount)
		case "check":
			// A sale with detailed check installments is deferred revenue
			// ("règlements à venir"), not part of the day's check total.
			if sale.CheckDetails == nil || sale.CheckDetails.Count == 0 {
				totalChecks = totalChecks.Add(sale.TotalAmount)
			}
		}
	}

	fullData, err := deepCopyFullData(req)
	if err != nil {
		log.Error().Err(err).Msg("raz history: snapshot copy failed, entry not archived")
		return nil
	}

	ts := s.now().UnixMilli()
	entry := &model.RAZHistoryEntry{
		ID:            fmt.Sprintf("raz_%d_%s", ts, strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		Date:          ts,
		SessionName:   req.SessionName,
		SessionStart:  req.SessionStart,
		SessionEnd:    req.SessionEnd,
		TotalSales:    totalSales,
		TotalCash:     totalCash,
		TotalCard:     totalCard,
		TotalChecks:   totalChecks,
		VendorStats:   fullData.VendorStats,
		SalesCount:    activeSales + len(req.Invoices),
		EmailContent:  req.EmailContent,
		CashSheetHTML: req.CashSheetHTML,
		FullData:      *fullData,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("id", entry.ID).Msg("raz history: save failed, reset continues")
		return nil
	}
	log.Info().Str("id", entry.ID).Str("total", totalSales.StringFixed(2)).Msg("raz history: snapshot archived")
	return entry
}

// deepCopyFullData round-trips the live slices through JSON so the archived
// snapshot owns its data — later mutation of live sales or invoices cannot
// reach into history.
func deepCopyFullData(req dto.RAZSnapshotRequest) (*model.RAZFullData, error) {
	src := model.RAZFullData{
		Sales:       req.Sales,
		Invoices:    req.Invoices,
		VendorStats: req.VendorStats,
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var dst model.RAZFullData
	if err := json.Unmarshal(raw, &dst); err != nil {
		return nil, err
	}
	if dst.Sales == nil {
		dst.Sales = []model.Sale{}
	}
	if dst.Invoices == nil {
		dst.Invoices = []model.Invoice{}
	}
	if dst.VendorStats == nil {
		dst.VendorStats = []model.VendorStat{}
	}
	return &dst, nil
}

func (s *historyService) GetHistory(ctx context.Context) ([]model.RAZHistoryEntry, error) {
	return s.repo.List(ctx)
}

func (s *historyService) GetRAZByID(ctx context.Context, id string) (*model.RAZHistoryEntry, error) {
	return s.repo.FindByID(ctx, id)
}

// DeleteRAZ propagates failure — deleting history is an explicit operator
// action and deserves a real error, unlike the best-effort save path.
func (s *historyService) DeleteRAZ(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *historyService) CleanOldHistory(ctx context.Context, keepLast int) (int64, error) {
	deleted, err := s.repo.DeleteOldest(ctx, keepLast)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Int("kept", keepLast).Msg("raz history: old entries pruned")
	}
	return deleted, nil
}

// ExportHistoryAsJSON never fails: on any error it returns "[]" so the export
// button always produces a loadable file.
func (s *historyService) ExportHistoryAsJSON(ctx context.Context) string {
	entries, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("raz history: export failed")
		return "[]"
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("raz history: export serialization failed")
		return "[]"
	}
	return string(raw)
}
