package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

const dayMs = int64(24 * 60 * 60 * 1000)

// CommissionService derives the per-vendor per-day commission skeleton from a
// session's date range and archives it when the session opens.
type CommissionService interface {
	GenerateEmptyTables(session *model.Session, vendors []model.Vendor) []model.CommissionTable
	SaveToHistory(ctx context.Context, session *model.Session, tables []model.CommissionTable) error
	// GenerateAndSaveOnSessionOpen runs the whole chain best-effort: failing
	// to archive must never block the session opening.
	GenerateAndSaveOnSessionOpen(ctx context.Context, session *model.Session)
}

type commissionService struct {
	vendorRepo  repository.VendorRepository
	archiveRepo repository.ArchiveRepository
	// activeFallback is the vendor-id allow-list used when a vendor row has
	// no explicit Active flag (legacy rosters). Configuration data, not logic.
	activeFallback map[string]bool
	now            func() time.Time
}

func NewCommissionService(vendorRepo repository.VendorRepository, archiveRepo repository.ArchiveRepository, activeVendorIDs []string) CommissionService {
	fallback := make(map[string]bool, len(activeVendorIDs))
	for _, id := range activeVendorIDs {
		fallback[id] = true
	}
	return &commissionService{
		vendorRepo:     vendorRepo,
		archiveRepo:    archiveRepo,
		activeFallback: fallback,
		now:            time.Now,
	}
}

// GenerateEmptyTables builds one table per vendor with exactly one row per
// calendar day in [EventStart, EventEnd] inclusive. Money starts at zero and
// salary at the flat default; the ≥1500 € flag is computed (always false on an
// empty row) but deliberately never feeds back into the salary.
func (s *commissionService) GenerateEmptyTables(session *model.Session, vendors []model.Vendor) []model.CommissionTable {
	if session == nil || session.EventStart == nil || session.EventEnd == nil {
		log.Warn().Msg("commission: session has no date range, no tables generated")
		return []model.CommissionTable{}
	}

	start, end := *session.EventStart, *session.EventEnd
	daysDiff := int((end-start)/dayMs) + 1
	if daysDiff < 1 {
		log.Warn().Int64("start", start).Int64("end", end).Msg("commission: inverted date range, no tables generated")
		return []model.CommissionTable{}
	}

	salary := decimal.NewFromInt(model.DailySalaryDefault)
	tables := make([]model.CommissionTable, 0, len(vendors))
	for _, v := range vendors {
		rate := model.CommissionRateStandard
		forfait := decimal.NewFromInt(model.ForfaitLogementStandard)
		// Exact, case-sensitive name match — fixed business rule.
		if v.Name == "Sylvie" {
			rate = model.CommissionRateSylvie
			forfait = decimal.Zero
		}

		rows := make([]model.CommissionDailyRow, 0, daysDiff)
		for i := 0; i < daysDiff; i++ {
			dateMs := start + int64(i)*dayMs
			rows = append(rows, model.CommissionDailyRow{
				Date:             time.UnixMilli(dateMs).UTC().Format("02/01/2006"),
				DateMs:           dateMs,
				Cheque:           decimal.Zero,
				CB:               decimal.Zero,
				Espece:           decimal.Zero,
				Total:            decimal.Zero,
				IsAboveThreshold: false,
				Salary:           salary,
			})
		}

		totalSalary := salary.Mul(decimal.NewFromInt(int64(daysDiff)))
		tables = append(tables, model.CommissionTable{
			VendorID:        v.ID,
			VendorName:      v.Name,
			CommissionRate:  rate,
			DailyRows:       rows,
			GrandTotal:      decimal.Zero,
			TotalSalary:     totalSalary,
			ForfaitLogement: forfait,
			FraisTransport:  decimal.Zero,
			NetAPayer:       totalSalary.Add(forfait),
		})
	}
	return tables
}

// SaveToHistory appends the generated tables to the archive as an "opening"
// snapshot. Never updates an existing entry.
func (s *commissionService) SaveToHistory(ctx context.Context, session *model.Session, tables []model.CommissionTable) error {
	serialized, err := json.Marshal(tables)
	if err != nil {
		return fmt.Errorf("commission: serialize tables: %w", err)
	}

	grandTotal, totalSalary, netAPayer := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range tables {
		grandTotal = grandTotal.Add(t.GrandTotal)
		totalSalary = totalSalary.Add(t.TotalSalary)
		netAPayer = netAPayer.Add(t.NetAPayer)
	}
	totals, err := json.Marshal(model.CommissionTotals{
		GrandTotal:  grandTotal.StringFixed(2),
		TotalSalary: totalSalary.StringFixed(2),
		NetAPayer:   netAPayer.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("commission: serialize totals: %w", err)
	}

	ts := s.now().UnixMilli()
	name := ""
	if session.EventName != nil {
		name = *session.EventName
	}
	var startMs, endMs int64
	if session.EventStart != nil {
		startMs = *session.EventStart
	}
	if session.EventEnd != nil {
		endMs = *session.EventEnd
	}

	entry := &model.CommissionArchive{
		ID:           fmt.Sprintf("commission-%s-%d", session.ID, ts),
		SessionID:    session.ID.String(),
		SessionName:  name,
		SessionStart: startMs,
		SessionEnd:   endMs,
		ArchivedAt:   ts,
		Type:         "opening",
		Tables:       string(serialized),
		Totals:       string(totals),
	}
	return s.archiveRepo.Save(ctx, entry)
}

func (s *commissionService) GenerateAndSaveOnSessionOpen(ctx context.Context, session *model.Session) {
	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("commission: roster unavailable, opening archive skipped")
		return
	}

	active := make([]model.Vendor, 0, len(vendors))
	for _, v := range vendors {
		switch {
		case v.Active != nil:
			if *v.Active {
				active = append(active, v)
			}
		case s.activeFallback[v.ID]:
			// Legacy row without the flag: fall back to the allow-list.
			active = append(active, v)
		}
	}

	tables := s.GenerateEmptyTables(session, active)
	if len(tables) == 0 {
		return
	}
	if err := s.SaveToHistory(ctx, session, tables); err != nil {
		log.Error().Err(err).Str("session", session.ID.String()).
			Msg("commission: opening archive failed, session opening continues")
		return
	}
	log.Info().Int("vendors", len(tables)).Str("session", session.ID.String()).
		Msg("commission: opening tables archived")
}
