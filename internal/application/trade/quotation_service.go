// Package trade runs the commercial flows: quotations and their conversion
// into sales, sales with immediate payment, delivery notes against factory
// stock and raw material purchase orders.
package trade

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuotationService handles quotations and their conversion into sales
type QuotationService struct {
	txScope         unitofwork.TransactionScope
	businessMetrics *telemetry.BusinessMetrics
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(txScope unitofwork.TransactionScope) *QuotationService {
	return &QuotationService{txScope: txScope}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *QuotationService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create creates a draft quotation numbered PRE-NNN. Lines without a unit
// price are priced from the design cost of their product.
func (s *QuotationService) Create(ctx context.Context, tenantID uuid.UUID, req CreateQuotationRequest) (*QuotationResponse, error) {
	var resp QuotationResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.ClientRepo().FindByIDForTenant(ctx, tenantID, req.ClientID); err != nil {
			return err
		}

		lines := make([]trade.QuotationLine, 0, len(req.Items))
		for _, item := range req.Items {
			line := trade.QuotationLine{
				ProductID:   item.ProductID,
				SizeID:      item.SizeID,
				ColorID:     item.ColorID,
				Description: item.Description,
				Quantity:    item.Quantity,
			}
			if item.ProductID != nil {
				cost, err := productCost(ctx, repos, tenantID, *item.ProductID)
				if err != nil {
					return err
				}
				line.Cost = cost
				line.UnitPrice = trade.PriceFromCost(cost)
			}
			if item.UnitPrice != nil {
				line.UnitPrice = *item.UnitPrice
			}
			lines = append(lines, line)
		}

		seq, err := repos.QuotationRepo().NextSequence(ctx, tenantID)
		if err != nil {
			return err
		}
		quotation, err := trade.NewQuotation(tenantID, trade.QuotationNumber(seq), req.ClientID, lines, req.UserID)
		if err != nil {
			return err
		}
		quotation.Notes = req.Notes
		if err := repos.QuotationRepo().Create(ctx, quotation); err != nil {
			return err
		}
		resp = ToQuotationResponse(quotation)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a quotation with its items
func (s *QuotationService) Get(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	var resp QuotationResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		quotation, err := repos.QuotationRepo().FindByIDForTenant(ctx, tenantID, quotationID)
		if err != nil {
			return err
		}
		resp = ToQuotationResponse(quotation)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists quotations
func (s *QuotationService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]QuotationResponse, error) {
	var items []QuotationResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.QuotationRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]QuotationResponse, 0, len(rows))
		for i := range rows {
			items = append(items, ToQuotationResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// Send marks a draft quotation as sent to the client
func (s *QuotationService) Send(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, tenantID, quotationID, (*trade.Quotation).Send)
}

// Reject closes an open quotation
func (s *QuotationService) Reject(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, tenantID, quotationID, (*trade.Quotation).Reject)
}

func (s *QuotationService) transition(ctx context.Context, tenantID, quotationID uuid.UUID, apply func(*trade.Quotation) error) (*QuotationResponse, error) {
	var resp QuotationResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		quotation, err := repos.QuotationRepo().FindForUpdate(ctx, tenantID, quotationID)
		if err != nil {
			return err
		}
		if err := apply(quotation); err != nil {
			return err
		}
		if err := repos.QuotationRepo().UpdateStatus(ctx, quotation); err != nil {
			return err
		}
		resp = ToQuotationResponse(quotation)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConvertToSale turns a quotation into a sale priced at design cost plus
// the fixed markup. The sale, its items and the quotation's move to
// Aceptada commit together; a quotation converts at most once.
func (s *QuotationService) ConvertToSale(ctx context.Context, tenantID, quotationID uuid.UUID, userID *uuid.UUID) (resp *SaleResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "QuotationService", "ConvertToSale",
		attribute.String("quotation_id", quotationID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var result SaleResponse
	var number string
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		quotation, err := repos.QuotationRepo().FindForUpdate(ctx, tenantID, quotationID)
		if err != nil {
			return err
		}
		number = quotation.Number
		if err := quotation.EnsureConvertible(); err != nil {
			return err
		}
		_, err = repos.SaleRepo().FindByQuotation(ctx, tenantID, quotation.ID)
		switch {
		case err == nil:
			return shared.NewDomainErrorf(shared.CodeAlreadyConverted, "Quotation %s has already been converted to a sale", quotation.Number)
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}

		clientID := quotation.ClientID
		sale, err := trade.NewSale(tenantID, &clientID, nil, trade.PaymentMethodToBeDefined, userID)
		if err != nil {
			return err
		}
		sale.RelatedQuotationID = &quotation.ID

		for _, item := range quotation.Items {
			if item.ProductID == nil {
				return shared.NewDomainErrorf(shared.CodeMissingDesign,
					"Quotation item %q has no product and cannot be sold", item.Description).
					WithDetail("quotation_item_id", item.ID.String())
			}
			cost, err := designCost(ctx, repos, tenantID, *item.ProductID)
			if err != nil {
				return err
			}
			if _, err := sale.AddItem(trade.SaleLine{
				ProductID: *item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: trade.PriceFromCost(cost),
				Cost:      cost,
			}); err != nil {
				return err
			}
		}

		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}
		if err := quotation.Accept(); err != nil {
			return err
		}
		if err := repos.QuotationRepo().UpdateStatus(ctx, quotation); err != nil {
			return err
		}
		result = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordConversion(ctx, tenantID, result.TotalAmount)
	logger.L(ctx).Info("quotation converted to sale",
		zap.String("quotation", number),
		zap.String("sale_id", result.ID.String()),
		zap.String("total", shared.MoneyString(result.TotalAmount)))
	return &result, nil
}

// designCost returns the calculated cost of the product's design, failing
// with MissingDesign when the product has none
func designCost(ctx context.Context, repos unitofwork.Repositories, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product.DesignID == nil || product.Design == nil {
		return decimal.Zero, shared.NewDomainErrorf(shared.CodeMissingDesign,
			"Product %s has no design to price it from", product.Name).
			WithDetail("product_id", product.ID.String())
	}
	return product.Design.CalculatedCost, nil
}

// productCost is designCost for pricing hints: a product without a design
// costs zero
func productCost(ctx context.Context, repos unitofwork.Repositories, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	cost, err := designCost(ctx, repos, tenantID, productID)
	if errors.Is(err, shared.ErrMissingDesign) {
		return decimal.Zero, nil
	}
	return cost, err
}
