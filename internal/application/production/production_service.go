// Package production drives production orders through the steps of their
// design, consuming raw material lots and crediting finished goods.
package production

import (
	"context"
	"errors"
	"time"

	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProductionService handles production orders and order notes
type ProductionService struct {
	txScope         unitofwork.TransactionScope
	ledger          *invapp.StockLedger
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewProductionService creates a new ProductionService
func NewProductionService(txScope unitofwork.TransactionScope, ledger *invapp.StockLedger) *ProductionService {
	if ledger == nil {
		ledger = invapp.NewStockLedger("")
	}
	return &ProductionService{txScope: txScope, ledger: ledger, now: time.Now}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *ProductionService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// CreateOrderNote creates the production request of a sale. A sale has at
// most one order note.
func (s *ProductionService) CreateOrderNote(ctx context.Context, tenantID uuid.UUID, req CreateOrderNoteRequest) (*OrderNoteResponse, error) {
	var resp OrderNoteResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		note, err := CreateOrderNote(ctx, repos, tenantID, req)
		if err != nil {
			return err
		}
		resp = ToOrderNoteResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrderNote creates an order note on the caller's transaction so a
// sale and its note commit together
func CreateOrderNote(ctx context.Context, repos unitofwork.Repositories, tenantID uuid.UUID, req CreateOrderNoteRequest) (*production.OrderNote, error) {
	note, err := production.NewOrderNote(tenantID, req.SaleID, req.EstimatedDeliveryDate, req.ShippingMethod, req.Details, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, req.SaleID); err != nil {
		return nil, err
	}
	_, err = repos.OrderNoteRepo().FindBySale(ctx, tenantID, req.SaleID)
	switch {
	case err == nil:
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Sale %s already has an order note", req.SaleID)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}
	if err := repos.OrderNoteRepo().Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetOrderNote returns an order note
func (s *ProductionService) GetOrderNote(ctx context.Context, tenantID, noteID uuid.UUID) (*OrderNoteResponse, error) {
	var resp OrderNoteResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		note, err := repos.OrderNoteRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		resp = ToOrderNoteResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrder creates a pending production order
func (s *ProductionService) CreateOrder(ctx context.Context, tenantID uuid.UUID, req CreateProductionOrderRequest) (*ProductionOrderResponse, error) {
	lines := make([]production.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, production.OrderLine{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			SizeID:         item.SizeID,
			ColorID:        item.ColorID,
			Customizations: item.Customizations,
		})
	}
	order, err := production.NewProductionOrder(tenantID, production.OrderInput{
		OrderNoteID:           req.OrderNoteID,
		BaseProductID:         req.BaseProductID,
		Team:                  req.Team,
		TeamDetail:            req.TeamDetail,
		CustomizationDetails:  req.CustomizationDetails,
		OpType:                production.OrderType(req.OpType),
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		Details:               req.Details,
		Items:                 lines,
		UserID:                req.UserID,
	})
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if order.OrderNoteID != nil {
			if _, err := repos.OrderNoteRepo().FindByIDForTenant(ctx, tenantID, *order.OrderNoteID); err != nil {
				return err
			}
		}
		if order.BaseProductID != nil {
			if _, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, *order.BaseProductID); err != nil {
				return err
			}
		}
		for _, item := range order.Items {
			if _, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID); err != nil {
				return err
			}
		}
		return repos.ProductionOrderRepo().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("production order created",
		zap.String("order_id", order.ID.String()),
		zap.Int64("units", order.TotalUnits()))
	resp := ToProductionOrderResponse(order)
	return &resp, nil
}

// GetOrder returns a production order with its items
func (s *ProductionService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*ProductionOrderResponse, error) {
	var resp ProductionOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		order, err := repos.ProductionOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		resp = ToProductionOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListOrders lists production orders. The "status" filter narrows by status.
func (s *ProductionService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductionOrderResponse, error) {
	var items []ProductionOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.ProductionOrderRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]ProductionOrderResponse, 0, len(rows))
		for i := range rows {
			items = append(items, ToProductionOrderResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// ListOrdersByNote lists the orders spawned by an order note
func (s *ProductionService) ListOrdersByNote(ctx context.Context, tenantID, noteID uuid.UUID) ([]ProductionOrderResponse, error) {
	var items []ProductionOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.ProductionOrderRepo().FindByOrderNote(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		items = make([]ProductionOrderResponse, 0, len(rows))
		for i := range rows {
			items = append(items, ToProductionOrderResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// StartOrder moves a pending order to En Proceso
func (s *ProductionService) StartOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*ProductionOrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, (*production.ProductionOrder).Start)
}

// CancelOrder cancels a non-terminal order
func (s *ProductionService) CancelOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*ProductionOrderResponse, error) {
	return s.transition(ctx, tenantID, orderID, (*production.ProductionOrder).Cancel)
}

func (s *ProductionService) transition(ctx context.Context, tenantID, orderID uuid.UUID, apply func(*production.ProductionOrder) error) (*ProductionOrderResponse, error) {
	var resp ProductionOrderResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		order, err := repos.ProductionOrderRepo().FindForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := apply(order); err != nil {
			return err
		}
		if err := repos.ProductionOrderRepo().UpdateProgress(ctx, order); err != nil {
			return err
		}
		resp = ToProductionOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteProcess records that the named step of the order's design
// finished. Every material line tagged to the step is deducted from the
// cheapest covering lot, scaled by the order's total units. Finishing the
// packaging step credits every item to the factory and completes the
// order. Either everything commits or nothing does.
func (s *ProductionService) CompleteProcess(ctx context.Context, tenantID, orderID uuid.UUID, req CompleteProcessRequest) (resp *CompleteProcessResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ProductionService", "CompleteProcess",
		attribute.String("order_id", orderID.String()),
		attribute.String("process_name", req.ProcessName))
	defer func() { telemetry.EndSpan(span, err) }()

	var (
		order    *production.ProductionOrder
		consumed []MaterialConsumption
		credited int64
	)
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		var err error
		order, err = repos.ProductionOrderRepo().FindForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.EnsureWorkable(); err != nil {
			return err
		}

		designID, err := orderDesign(ctx, repos, order)
		if err != nil {
			return err
		}
		step, err := repos.DesignRepo().FindProcessByName(ctx, tenantID, designID, req.ProcessName)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFoundf("Design has no process named %q", req.ProcessName).
				WithDetail("design_id", designID.String())
		}
		if err != nil {
			return err
		}

		lines, err := repos.DesignRepo().FindMaterialsForStep(ctx, tenantID, step.ID)
		if err != nil {
			return err
		}
		units := decimal.NewFromInt(order.TotalUnits())
		consumed = make([]MaterialConsumption, 0, len(lines))
		for _, line := range lines {
			required := line.Quantity.Mul(units)
			lot, err := s.ledger.DeductRawMaterial(ctx, repos, tenantID, line.RawMaterialID, required)
			if err != nil {
				return err
			}
			consumed = append(consumed, MaterialConsumption{
				RawMaterialID: line.RawMaterialID,
				Material:      line.MaterialName(),
				LotID:         lot.ID,
				Quantity:      required.String(),
			})
		}

		order.AdvanceTo(step.ID, req.ProcessName)
		if catalog.IsPackagingStep(req.ProcessName) {
			factory, err := s.ledger.FactoryLocal(ctx, repos, tenantID)
			if err != nil {
				return err
			}
			for _, item := range order.Items {
				if err := s.ledger.Credit(ctx, repos, tenantID, item.ProductID, factory.ID, item.Quantity); err != nil {
					return err
				}
				credited += item.Quantity
			}
			order.Complete()
		}

		log := production.NewProcessLog(order, step.ID, req.ProcessName, s.now(), req.UserID)
		if err := repos.ProcessLogRepo().Create(ctx, log); err != nil {
			return err
		}
		return repos.ProductionOrderRepo().UpdateProgress(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	for _, c := range consumed {
		qty, _ := decimal.NewFromString(c.Quantity)
		s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementLotDeduct, qty.IntPart())
	}
	if credited > 0 {
		s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementPackaging, credited)
	}
	logger.L(ctx).Info("production process completed",
		zap.String("order_id", order.ID.String()),
		zap.String("process", req.ProcessName),
		zap.String("status", string(order.Status)),
		zap.Int("materials", len(consumed)),
		zap.Int64("credited", credited))

	return &CompleteProcessResponse{
		Order:    ToProductionOrderResponse(order),
		Consumed: consumed,
		Credited: credited,
	}, nil
}

// ProcessLogs lists the completed steps of an order
func (s *ProductionService) ProcessLogs(ctx context.Context, tenantID, orderID uuid.UUID) ([]ProcessLogResponse, error) {
	var items []ProcessLogResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.ProductionOrderRepo().FindByIDForTenant(ctx, tenantID, orderID); err != nil {
			return err
		}
		rows, err := repos.ProcessLogRepo().FindByOrder(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		items = make([]ProcessLogResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toProcessLogResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

func orderDesign(ctx context.Context, repos unitofwork.Repositories, order *production.ProductionOrder) (uuid.UUID, error) {
	if order.BaseProductID == nil {
		return uuid.Nil, shared.NotFoundf("Production order %s has no base product", order.ID)
	}
	product, err := repos.ProductRepo().FindByIDForTenant(ctx, order.TenantID, *order.BaseProductID)
	if err != nil {
		return uuid.Nil, err
	}
	if !product.HasDesign() {
		return uuid.Nil, shared.NotFoundf("Product %s has no design", product.Name)
	}
	return *product.DesignID, nil
}
