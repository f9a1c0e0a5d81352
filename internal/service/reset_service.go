package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/store"
)

// ResetService orchestrates the end-of-session RAZ: a best-effort linear
// sequence with no rollback. Stock levels are the one thing guaranteed to
// survive, via snapshot-then-restore around the wipe — the domain tolerates
// "mostly reset", it does not tolerate lost truck inventory.
type ResetService interface {
	ExecuteSessionReset(ctx context.Context) *dto.ResetResult
	ClearPendingChecksOnly(ctx context.Context) *dto.ResetResult
	PreviewSessionReset(ctx context.Context) (*dto.ResetPreview, error)
}

type resetService struct {
	sessionRepo   repository.SessionRepository
	saleRepo      repository.SaleRepository
	cartRepo      repository.CartRepository
	vendorRepo    repository.VendorRepository
	stockRepo     repository.StockRepository
	analyticsRepo repository.AnalyticsRepository
	cacheRepo     repository.CacheRepository
	fast          store.Tier
	now           func() time.Time
}

func NewResetService(
	sessionRepo repository.SessionRepository,
	saleRepo repository.SaleRepository,
	cartRepo repository.CartRepository,
	vendorRepo repository.VendorRepository,
	stockRepo repository.StockRepository,
	analyticsRepo repository.AnalyticsRepository,
	cacheRepo repository.CacheRepository,
	fast store.Tier,
) ResetService {
	return &resetService{
		sessionRepo:   sessionRepo,
		saleRepo:      saleRepo,
		cartRepo:      cartRepo,
		vendorRepo:    vendorRepo,
		stockRepo:     stockRepo,
		analyticsRepo: analyticsRepo,
		cacheRepo:     cacheRepo,
		fast:          fast,
		now:           time.Now,
	}
}

// stockSnapshot holds the levels preserved across the wipe, in memory only.
type stockSnapshot struct {
	ProductName   string
	PhysicalStock int
	MinStock      int
}

// ExecuteSessionReset runs the RAZ sequence. Steps are ordered and mostly
// non-tolerant: a failure aborts the remainder and reports success=false, but
// already-executed steps are not rolled back. The fast-tier invoice cleanup
// (step 10) and individual stock restores (step 12) soft-fail: their errors
// are recorded without flipping the overall result.
func (s *resetService) ExecuteSessionReset(ctx context.Context) *dto.ResetResult {
	res := &dto.ResetResult{Success: true}
	fail := func(step string, err error) *dto.ResetResult {
		msg := fmt.Sprintf("%s: %v", step, err)
		log.Error().Err(err).Str("step", step).Msg("raz: aborted")
		res.Success = false
		res.Message = "RAZ interrompue — voir le détail des étapes"
		res.Errors = append(res.Errors, msg)
		return res
	}

	// 1. Snapshot stock levels.
	stocks, err := s.stockRepo.List(ctx)
	if err != nil {
		return fail("sauvegarde du stock", err)
	}
	snapshot := make(map[string]stockSnapshot, len(stocks))
	for _, st := range stocks {
		snapshot[st.ID] = stockSnapshot{ProductName: st.ProductName, PhysicalStock: st.PhysicalStock, MinStock: st.MinStock}
	}
	res.Details = append(res.Details, fmt.Sprintf("Stock physique sauvegardé (%d références)", len(snapshot)))

	// 2. Close the active session — absence is a soft warning, not an error.
	switch session, err := s.sessionRepo.FindOpen(ctx); {
	case err == nil:
		if err := s.sessionRepo.Close(ctx, session.ID, s.now().UnixMilli()); err != nil {
			return fail("clôture de la session", err)
		}
		res.Details = append(res.Details, "Session active clôturée")
	case err == repository.ErrNoOpenSession:
		res.Details = append(res.Details, "Aucune session active à clôturer")
	default:
		return fail("recherche de la session active", err)
	}

	// 3–4. Clear sales and cart items.
	if err := s.saleRepo.ClearAll(ctx); err != nil {
		return fail("suppression des ventes", err)
	}
	res.Details = append(res.Details, "Ventes supprimées")
	if err := s.cartRepo.ClearAll(ctx); err != nil {
		return fail("suppression du panier", err)
	}
	res.Details = append(res.Details, "Panier vidé")

	// 5. Zero vendor counters — identity rows stay.
	if err := s.vendorRepo.ResetCounters(ctx, s.now().UnixMilli()); err != nil {
		return fail("remise à zéro des vendeuses", err)
	}
	res.Details = append(res.Details, "Compteurs vendeuses remis à zéro")

	// 6. Delete "sale" stock movements only; replenishments survive.
	if err := s.stockRepo.DeleteMovementsByType(ctx, "sale"); err != nil {
		return fail("suppression des mouvements de vente", err)
	}
	res.Details = append(res.Details, "Mouvements de stock type vente supprimés")

	// 7. Clear analytics collections.
	if err := s.analyticsRepo.ClearVendor(ctx); err != nil {
		return fail("suppression des statistiques vendeuses", err)
	}
	if err := s.analyticsRepo.ClearProduct(ctx); err != nil {
		return fail("suppression des statistiques produits", err)
	}
	res.Details = append(res.Details, "Statistiques vendeuses et produits supprimées")

	// 8. Clear the whole session collection, not just the active row.
	if err := s.sessionRepo.ClearAll(ctx); err != nil {
		return fail("suppression de l'historique des sessions", err)
	}
	res.Details = append(res.Details, "Historique des sessions supprimé")

	// 9. Clear the generic cache collection.
	if err := s.cacheRepo.ClearAll(ctx); err != nil {
		return fail("vidage du cache", err)
	}
	res.Details = append(res.Details, "Cache vidé")

	// 10. Fast-tier invoice/pending-payment cleanup — soft-fails: recorded,
	// never aborts the RAZ.
	invoiceKeys := store.InvoiceKeys()
	clearedKeys := 0
	for _, key := range invoiceKeys {
		if s.fast.TryDelete(ctx, key) {
			clearedKeys++
		} else {
			res.Errors = append(res.Errors, fmt.Sprintf("clé %q non supprimée du cache rapide", key))
		}
	}
	res.Details = append(res.Details, fmt.Sprintf("Factures externes et règlements à venir effacés (%d/%d clés)", clearedKeys, len(invoiceKeys)))

	// 11. Fixed list of cart/sales/vendor bookkeeping keys.
	for _, key := range store.SessionKeys() {
		s.fast.TryDelete(ctx, key)
	}
	res.Details = append(res.Details, "Clés de session du cache rapide effacées")

	// 12. Restore stock from the snapshot; count individual failures but keep going.
	restored, failed := 0, 0
	ts := s.now().UnixMilli()
	for id, snap := range snapshot {
		err := s.stockRepo.Save(ctx, &model.Stock{
			ID:            id,
			ProductName:   snap.ProductName,
			PhysicalStock: snap.PhysicalStock,
			MinStock:      snap.MinStock,
			LastUpdate:    ts,
		})
		if err != nil {
			failed++
			log.Error().Err(err).Str("stock_id", id).Msg("raz: stock restore failed")
			res.Errors = append(res.Errors, fmt.Sprintf("stock %q non restauré: %v", id, err))
			continue
		}
		restored++
	}
	res.Details = append(res.Details, fmt.Sprintf("Stock physique restauré (%d références, %d échecs)", restored, failed))

	res.Message = "RAZ terminée"
	log.Info().Int("stock_restored", restored).Int("stock_failed", failed).Msg("raz: complete")
	return res
}

// ClearPendingChecksOnly removes only the external-invoice / pending-payment
// fast-tier keys — used when the "règlements à venir" view needs clearing
// without a full session close.
func (s *resetService) ClearPendingChecksOnly(ctx context.Context) *dto.ResetResult {
	res := &dto.ResetResult{Success: true, Message: "Règlements à venir effacés"}
	for _, key := range store.InvoiceKeys() {
		if s.fast.TryDelete(ctx, key) {
			res.Details = append(res.Details, fmt.Sprintf("Clé %q effacée", key))
		} else {
			res.Errors = append(res.Errors, fmt.Sprintf("clé %q non supprimée du cache rapide", key))
		}
	}
	return res
}

// PreviewSessionReset counts affected records without mutating anything.
func (s *resetService) PreviewSessionReset(ctx context.Context) (*dto.ResetPreview, error) {
	preview := &dto.ResetPreview{
		ToDelete: make(map[string]int64),
		ToKeep:   make(map[string]int64),
	}

	counts := []struct {
		label string
		dest  map[string]int64
		count func(context.Context) (int64, error)
	}{
		{"ventes", preview.ToDelete, s.saleRepo.Count},
		{"articles panier", preview.ToDelete, s.cartRepo.Count},
		{"sessions", preview.ToDelete, s.sessionRepo.Count},
		{"statistiques vendeuses", preview.ToDelete, s.analyticsRepo.CountVendor},
		{"statistiques produits", preview.ToDelete, s.analyticsRepo.CountProduct},
		{"entrées cache", preview.ToDelete, s.cacheRepo.Count},
		{"références stock", preview.ToKeep, s.stockRepo.Count},
		{"vendeuses", preview.ToKeep, s.vendorRepo.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("comptage %s: %w", c.label, err)
		}
		c.dest[c.label] = n
	}

	n, err := s.stockRepo.CountMovementsByType(ctx, "sale")
	if err != nil {
		return nil, fmt.Errorf("comptage mouvements de vente: %w", err)
	}
	preview.ToDelete["mouvements de vente"] = n

	n, err = s.stockRepo.CountMovementsByType(ctx, "restock")
	if err != nil {
		return nil, fmt.Errorf("comptage réapprovisionnements: %w", err)
	}
	preview.ToKeep["réapprovisionnements"] = n

	// Cached external invoices live in the fast tier as an enveloped list.
	if raw, ok := s.fast.TryGet(ctx, store.KeyCachedInvoices); ok {
		var invoices []model.Invoice
		if err := json.Unmarshal(store.ParseEnvelope(raw).Data, &invoices); err == nil {
			preview.ToDelete["factures externes en cache"] = int64(len(invoices))
		}
	}

	return preview, nil
}
