package trade

import (
	"context"

	finapp "github.com/ejarriada/Fanaticos/internal/application/finance"
	prodapp "github.com/ejarriada/Fanaticos/internal/application/production"
	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SaleService handles direct sales
type SaleService struct {
	txScope         unitofwork.TransactionScope
	businessMetrics *telemetry.BusinessMetrics
}

// NewSaleService creates a new SaleService
func NewSaleService(txScope unitofwork.TransactionScope) *SaleService {
	return &SaleService{txScope: txScope}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *SaleService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create records a sale. Each line keeps the design cost of its product at
// sale time. A sale paid with an immediate method is posted to the cash
// account, and an order note is opened when requested; both commit with
// the sale.
func (s *SaleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (resp *SaleResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SaleService", "Create",
		attribute.String("payment_method", req.PaymentMethod),
		attribute.Int("items", len(req.Items)))
	defer func() { telemetry.EndSpan(span, err) }()

	if len(req.Items) == 0 {
		return nil, shared.Validationf("A sale needs at least one item")
	}
	sale, err := trade.NewSale(tenantID, req.ClientID, req.LocalID, req.PaymentMethod, req.UserID)
	if err != nil {
		return nil, err
	}

	var result SaleResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if req.ClientID != nil {
			if _, err := repos.ClientRepo().FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
				return err
			}
		}
		if req.LocalID != nil {
			if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, *req.LocalID); err != nil {
				return err
			}
		}
		for _, item := range req.Items {
			cost, err := productCost(ctx, repos, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			line := trade.SaleLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: trade.PriceFromCost(cost), Cost: cost}
			if item.UnitPrice != nil {
				line.UnitPrice = *item.UnitPrice
			}
			if _, err := sale.AddItem(line); err != nil {
				return err
			}
		}
		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}
		result = ToSaleResponse(sale)

		payment, err := finapp.PostSalePayment(ctx, repos, sale)
		if err != nil {
			return err
		}
		if payment != nil {
			tx := finapp.ToTransactionResponse(payment)
			result.Payment = &tx
		}

		if req.OrderNote != nil {
			note, err := prodapp.CreateOrderNote(ctx, repos, tenantID, prodapp.CreateOrderNoteRequest{
				SaleID:                sale.ID,
				EstimatedDeliveryDate: req.OrderNote.EstimatedDeliveryDate,
				ShippingMethod:        req.OrderNote.ShippingMethod,
				Details:               req.OrderNote.Details,
				UserID:                req.UserID,
			})
			if err != nil {
				return err
			}
			noteResp := prodapp.ToOrderNoteResponse(note)
			result.OrderNote = &noteResp
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Payment != nil {
		s.businessMetrics.RecordPayment(ctx, tenantID, sale.PaymentMethod, "in", sale.TotalAmount)
	}
	logger.L(ctx).Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("payment_method", sale.PaymentMethod),
		zap.String("total", shared.MoneyString(sale.TotalAmount)),
		zap.Bool("posted", result.Payment != nil))
	return &result, nil
}

// Get returns a sale with its items
func (s *SaleService) Get(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	var resp SaleResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		resp = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists sales, optionally for one client
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SaleResponse, error) {
	var items []SaleResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.SaleRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]SaleResponse, 0, len(rows))
		for i := range rows {
			items = append(items, ToSaleResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}
