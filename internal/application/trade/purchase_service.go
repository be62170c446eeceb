package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService handles raw material purchase orders. Payments of an
// order are booked by the finance PaymentService.
type PurchaseService struct {
	txScope         unitofwork.TransactionScope
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(txScope unitofwork.TransactionScope) *PurchaseService {
	return &PurchaseService{txScope: txScope, now: time.Now}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *PurchaseService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create creates a pending purchase order with the next order number
func (s *PurchaseService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	lines := make([]trade.PurchaseLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, trade.PurchaseLine{
			RawMaterialID:      item.RawMaterialID,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DestinationLocalID: item.DestinationLocalID,
		})
	}

	var resp PurchaseOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.SupplierRepo().FindByIDForTenant(ctx, tenantID, req.SupplierID); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := repos.RawMaterialRepo().FindByIDForTenant(ctx, tenantID, line.RawMaterialID); err != nil {
				return err
			}
			if line.DestinationLocalID != nil {
				if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, *line.DestinationLocalID); err != nil {
					return err
				}
			}
		}
		number, err := repos.PurchaseOrderRepo().NextSequence(ctx, tenantID)
		if err != nil {
			return err
		}
		order, err := trade.NewPurchaseOrder(tenantID, number, req.SupplierID, lines, req.ExpectedDeliveryDate, req.UserID)
		if err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().Create(ctx, order); err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a purchase order with its items
func (s *PurchaseService) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp PurchaseOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		order, err := repos.PurchaseOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists purchase orders
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrderResponse, error) {
	var items []PurchaseOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.PurchaseOrderRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]PurchaseOrderResponse, 0, len(rows))
		for i := range rows {
			items = append(items, ToPurchaseOrderResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// Receive marks the order as received and opens one raw material lot per
// item, priced at the purchase unit price
func (s *PurchaseService) Receive(ctx context.Context, tenantID, orderID uuid.UUID, req ReceivePurchaseOrderRequest) (*PurchaseReceiptResponse, error) {
	var resp PurchaseReceiptResponse
	var received int64
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		order, err := repos.PurchaseOrderRepo().FindForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.MarkReceived(s.now()); err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().UpdateStatus(ctx, order); err != nil {
			return err
		}

		batch := strings.TrimSpace(req.BatchNumber)
		if batch == "" {
			batch = fmt.Sprintf("OC-%d", order.Number)
		}
		supplierID := order.SupplierID
		resp.Lots = make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			lot, err := inventory.NewMaterialLot(tenantID, item.RawMaterialID, &supplierID, item.UnitPrice, item.Quantity, batch)
			if err != nil {
				return err
			}
			if err := repos.MaterialLotRepo().Save(ctx, lot); err != nil {
				return err
			}
			resp.Lots = append(resp.Lots, lot.ID)
			received += item.Quantity.IntPart()
		}
		resp.Order = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementLotReceipt, received)
	logger.L(ctx).Info("purchase order received",
		zap.Int64("number", resp.Order.Number),
		zap.Int("lots", len(resp.Lots)))
	return &resp, nil
}

// Cancel cancels an order that has been neither paid nor received
func (s *PurchaseService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp PurchaseOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		order, err := repos.PurchaseOrderRepo().FindForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().UpdateStatus(ctx, order); err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
