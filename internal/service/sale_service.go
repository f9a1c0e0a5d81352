package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

type SaleService interface {
	Register(ctx context.Context, req dto.RegisterSaleRequest) (*model.Sale, error)
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Sale, error)
	Restock(ctx context.Context, req dto.RestockRequest) error
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest) error
}

type saleService struct {
	saleRepo      repository.SaleRepository
	vendorRepo    repository.VendorRepository
	stockRepo     repository.StockRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	vendorRepo repository.VendorRepository,
	stockRepo repository.StockRepository,
	analyticsRepo repository.AnalyticsRepository,
) SaleService {
	return &saleService{
		saleRepo:      saleRepo,
		vendorRepo:    vendorRepo,
		stockRepo:     stockRepo,
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// Register persists the ticket, folds it into the vendor's counters, and
// decrements stock with one "sale" movement per line. Replays of the same
// client-generated id are rejected, which makes offline queue flushes safe.
func (s *saleService) Register(ctx context.Context, req dto.RegisterSaleRequest) (*model.Sale, error) {
	if existing, err := s.saleRepo.FindByID(ctx, req.ID); err == nil && existing != nil {
		return nil, fmt.Errorf("vente %q déjà enregistrée", req.ID)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, errors.New("vendeuse inconnue")
	}

	ts := req.Date
	if ts == 0 {
		ts = s.now().UnixMilli()
	}
	sale := &model.Sale{
		ID:            req.ID,
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		CheckDetails:  req.CheckDetails,
		Date:          ts,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.ApplySale(ctx, vendor.ID, req.TotalAmount, ts); err != nil {
		return nil, err
	}

	day := time.UnixMilli(ts).UTC().Format("2006-01-02")
	for _, item := range req.Items {
		if err := s.stockRepo.AdjustPhysical(ctx, item.StockID, -item.Quantity, ts); err != nil {
			return nil, fmt.Errorf("stock %q: %w", item.StockID, err)
		}
		movement := &model.StockMovement{
			ID:       uuid.New(),
			StockID:  item.StockID,
			Type:     "sale",
			Quantity: -item.Quantity,
			Reason:   fmt.Sprintf("vente %s", sale.ID),
		}
		if err := s.stockRepo.CreateMovement(ctx, movement); err != nil {
			return nil, err
		}
		// Analytics are scratch data — losing one line is not worth
		// failing the ticket over.
		lineAmount := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if err := s.analyticsRepo.RecordSale(ctx, vendor.ID, day, item.ProductName, lineAmount, item.Quantity); err != nil {
			log.Warn().Err(err).Str("sale", sale.ID).Msg("sale: analytics update failed")
		}
	}

	return sale, nil
}

// Cancel marks the sale canceled and compensates its stock movements with a
// replenishment entry, so RAZ keeps the compensation while dropping the sale.
func (s *saleService) Cancel(ctx context.Context, id string) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("vente introuvable")
	}
	if sale.Canceled {
		return errors.New("vente déjà annulée")
	}
	if err := s.saleRepo.Cancel(ctx, id); err != nil {
		return err
	}

	movements, err := s.stockRepo.ListMovements(ctx, repository.StockMovementFilter{Type: "sale"})
	if err != nil {
		return nil // the cancellation itself succeeded
	}
	ts := s.now().UnixMilli()
	reason := fmt.Sprintf("vente %s", id)
	for _, m := range movements {
		if m.Reason != reason {
			continue
		}
		if err := s.stockRepo.AdjustPhysical(ctx, m.StockID, -m.Quantity, ts); err != nil {
			log.Warn().Err(err).Str("stock_id", m.StockID).Msg("sale: stock compensation failed")
			continue
		}
		_ = s.stockRepo.CreateMovement(ctx, &model.StockMovement{
			ID:       uuid.New(),
			StockID:  m.StockID,
			Type:     "restock",
			Quantity: -m.Quantity,
			Reason:   fmt.Sprintf("annulation %s", reason),
		})
	}
	return nil
}

func (s *saleService) List(ctx context.Context) ([]model.Sale, error) {
	return s.saleRepo.List(ctx)
}

// Restock registers a replenishment movement and bumps the physical level.
func (s *saleService) Restock(ctx context.Context, req dto.RestockRequest) error {
	ts := s.now().UnixMilli()
	if err := s.stockRepo.AdjustPhysical(ctx, req.StockID, req.Quantity, ts); err != nil {
		return err
	}
	return s.stockRepo.CreateMovement(ctx, &model.StockMovement{
		ID:       uuid.New(),
		StockID:  req.StockID,
		Type:     "restock",
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
}

// AdjustStock applies a signed manual correction, recorded as an "adjustment"
// movement so RAZ preserves it alongside replenishments.
func (s *saleService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest) error {
	ts := s.now().UnixMilli()
	if err := s.stockRepo.AdjustPhysical(ctx, req.StockID, req.Delta, ts); err != nil {
		return err
	}
	return s.stockRepo.CreateMovement(ctx, &model.StockMovement{
		ID:       uuid.New(),
		StockID:  req.StockID,
		Type:     "adjustment",
		Quantity: req.Delta,
		Reason:   req.Reason,
	})
}
