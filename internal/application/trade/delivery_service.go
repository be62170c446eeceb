package trade

import (
	"context"

	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DeliveryService dispatches sold goods from factory stock
type DeliveryService struct {
	txScope         unitofwork.TransactionScope
	ledger          *invapp.StockLedger
	businessMetrics *telemetry.BusinessMetrics
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(txScope unitofwork.TransactionScope, ledger *invapp.StockLedger) *DeliveryService {
	if ledger == nil {
		ledger = invapp.NewStockLedger("")
	}
	return &DeliveryService{txScope: txScope, ledger: ledger}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *DeliveryService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create issues a delivery note for a sale. Every requested line is checked
// against what was sold, what earlier notes delivered and what the factory
// holds before anything is written; then the note is stored and factory
// stock is debited in the same transaction.
func (s *DeliveryService) Create(ctx context.Context, tenantID, saleID uuid.UUID, req CreateDeliveryNoteRequest) (resp *DeliveryNoteResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "DeliveryService", "Create",
		attribute.String("sale_id", saleID.String()),
		attribute.Int("items", len(req.Items)))
	defer func() { telemetry.EndSpan(span, err) }()

	requested := make([]trade.DeliveryLine, 0, len(req.Items))
	for _, item := range req.Items {
		requested = append(requested, trade.DeliveryLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	lines, err := trade.MergeDeliveryLines(requested)
	if err != nil {
		return nil, err
	}

	var result DeliveryNoteResponse
	var units int64
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		sale, err := repos.SaleRepo().FindForUpdate(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		factory, err := s.ledger.FactoryLocal(ctx, repos, tenantID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			sold, err := repos.SaleRepo().SoldQuantity(ctx, tenantID, sale.ID, line.ProductID)
			if err != nil {
				return err
			}
			delivered, err := repos.DeliveryNoteRepo().DeliveredQuantity(ctx, tenantID, sale.ID, line.ProductID)
			if err != nil {
				return err
			}
			if err := trade.CheckDeliverable(line, sold, delivered); err != nil {
				return err
			}
			available, err := repos.InventoryRepo().QuantityOf(ctx, tenantID, line.ProductID, factory.ID)
			if err != nil {
				return err
			}
			if available < line.Quantity {
				return shared.NewDomainErrorf(shared.CodeInsufficientStock,
					"Insufficient stock of product %s at %s: requested %d, available %d", line.ProductID, factory.Name, line.Quantity, available).
					WithDetail("product_id", line.ProductID.String()).
					WithDetail("local", factory.Name).
					WithDetail("requested", line.Quantity).
					WithDetail("available", available)
			}
		}

		note := trade.NewDeliveryNote(tenantID, sale.ID, lines, req.TrackingNumber, req.Notes, req.UserID)
		if err := repos.DeliveryNoteRepo().Create(ctx, note); err != nil {
			return err
		}
		for _, line := range lines {
			if err := s.ledger.Debit(ctx, repos, tenantID, line.ProductID, factory.ID, line.Quantity); err != nil {
				return err
			}
			units += line.Quantity
		}
		result = ToDeliveryNoteResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementDelivery, units)
	logger.L(ctx).Info("delivery note issued",
		zap.String("sale_id", saleID.String()),
		zap.String("delivery_note_id", result.ID.String()),
		zap.Int64("units", units))
	return &result, nil
}

// Get returns a delivery note with its items
func (s *DeliveryService) Get(ctx context.Context, tenantID, noteID uuid.UUID) (*DeliveryNoteResponse, error) {
	var resp DeliveryNoteResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		note, err := repos.DeliveryNoteRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		resp = ToDeliveryNoteResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBySale lists the delivery notes of a sale
func (s *DeliveryService) ListBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]DeliveryNoteResponse, error) {
	var items []DeliveryNoteResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID); err != nil {
			return err
		}
		notes, err := repos.DeliveryNoteRepo().FindBySale(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		items = make([]DeliveryNoteResponse, 0, len(notes))
		for i := range notes {
			items = append(items, ToDeliveryNoteResponse(&notes[i]))
		}
		return nil
	})
	return items, err
}

// Progress reports, per sold product, how many units are still to deliver
func (s *DeliveryService) Progress(ctx context.Context, tenantID, saleID uuid.UUID) ([]DeliveryProgressResponse, error) {
	var items []DeliveryProgressResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		seen := make(map[uuid.UUID]bool, len(sale.Items))
		sold := sale.SoldQuantities()
		for _, item := range sale.Items {
			if seen[item.ProductID] {
				continue
			}
			seen[item.ProductID] = true
			delivered, err := repos.DeliveryNoteRepo().DeliveredQuantity(ctx, tenantID, sale.ID, item.ProductID)
			if err != nil {
				return err
			}
			items = append(items, DeliveryProgressResponse{
				ProductID: item.ProductID,
				Sold:      sold[item.ProductID],
				Delivered: delivered,
				Remaining: sold[item.ProductID] - delivered,
			})
		}
		return nil
	})
	return items, err
}
