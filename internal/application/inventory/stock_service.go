package inventory

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StockService exposes the stock ledger as standalone operations, each in
// its own transaction.
type StockService struct {
	txScope         unitofwork.TransactionScope
	ledger          *StockLedger
	businessMetrics *telemetry.BusinessMetrics
}

// NewStockService creates a new StockService
func NewStockService(txScope unitofwork.TransactionScope, ledger *StockLedger) *StockService {
	if ledger == nil {
		ledger = NewStockLedger("")
	}
	return &StockService{txScope: txScope, ledger: ledger}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *StockService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Adjust applies a signed delta to a product at a location
func (s *StockService) Adjust(ctx context.Context, tenantID uuid.UUID, req AdjustStockRequest) (resp *StockLevelResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "StockService", "Adjust",
		attribute.String("product_id", req.ProductID.String()),
		attribute.Int64("delta", req.Delta))
	defer func() { telemetry.EndSpan(span, err) }()

	var level StockLevelResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		localID, err := s.resolveLocal(ctx, repos, tenantID, req.LocalID)
		if err != nil {
			return err
		}
		if err := ensureProduct(ctx, repos, tenantID, req.ProductID); err != nil {
			return err
		}
		qty, err := s.ledger.Adjust(ctx, repos, tenantID, req.ProductID, localID, req.Delta)
		if err != nil {
			return err
		}
		level = StockLevelResponse{ProductID: req.ProductID, LocalID: localID, Quantity: qty}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementAdjust, req.Delta)
	return &level, nil
}

// Transfer moves units of a product between two locations atomically
func (s *StockService) Transfer(ctx context.Context, tenantID uuid.UUID, req TransferStockRequest) (resp *TransferResultResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "StockService", "Transfer",
		attribute.String("product_id", req.ProductID.String()),
		attribute.Int64("quantity", req.Quantity))
	defer func() { telemetry.EndSpan(span, err) }()

	var result TransferResultResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		for _, id := range []uuid.UUID{req.FromLocalID, req.ToLocalID} {
			if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, id); err != nil {
				return err
			}
		}
		if err := ensureProduct(ctx, repos, tenantID, req.ProductID); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, repos, tenantID, req.ProductID, req.FromLocalID, req.ToLocalID, req.Quantity); err != nil {
			return err
		}
		from, err := repos.InventoryRepo().Find(ctx, tenantID, req.ProductID, req.FromLocalID)
		if err != nil {
			return err
		}
		to, err := repos.InventoryRepo().Find(ctx, tenantID, req.ProductID, req.ToLocalID)
		if err != nil {
			return err
		}
		result = TransferResultResponse{From: toStockLevelResponse(from), To: toStockLevelResponse(to)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementTransfer, req.Quantity)
	logger.L(ctx).Info("stock transferred",
		zap.String("product_id", req.ProductID.String()),
		zap.String("from_local_id", req.FromLocalID.String()),
		zap.String("to_local_id", req.ToLocalID.String()),
		zap.Int64("quantity", req.Quantity))
	return &result, nil
}

// CreateAdjustment records an audited adjustment and applies it. Product
// adjustments default to the factory location; raw material adjustments
// apply to the named lot, which must belong to the material.
func (s *StockService) CreateAdjustment(ctx context.Context, tenantID uuid.UUID, req CreateStockAdjustmentRequest) (resp *StockAdjustmentResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "StockService", "CreateAdjustment",
		attribute.String("adjustment_type", req.AdjustmentType))
	defer func() { telemetry.EndSpan(span, err) }()

	adjustment, err := inventory.NewStockAdjustment(tenantID, inventory.StockAdjustmentInput{
		ProductID:      req.ProductID,
		LocalID:        req.LocalID,
		RawMaterialID:  req.RawMaterialID,
		MaterialLotID:  req.MaterialLotID,
		AdjustmentType: inventory.AdjustmentType(req.AdjustmentType),
		Quantity:       req.Quantity,
		Notes:          req.Notes,
		UserID:         req.UserID,
	})
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if adjustment.IsProductAdjustment() {
			if err := ensureProduct(ctx, repos, tenantID, *adjustment.ProductID); err != nil {
				return err
			}
			localID, err := s.resolveLocal(ctx, repos, tenantID, adjustment.LocalID)
			if err != nil {
				return err
			}
			adjustment.LocalID = &localID
			if _, err := s.ledger.Adjust(ctx, repos, tenantID, *adjustment.ProductID, localID, adjustment.UnitDelta()); err != nil {
				return err
			}
		} else {
			lot, err := repos.MaterialLotRepo().FindByIDForTenant(ctx, tenantID, *adjustment.MaterialLotID)
			if err != nil {
				return err
			}
			if lot.RawMaterialID != *adjustment.RawMaterialID {
				return shared.Validationf("Lot %s does not belong to raw material %s", lot.ID, *adjustment.RawMaterialID)
			}
			if _, err := s.ledger.AdjustLot(ctx, repos, tenantID, lot.ID, adjustment.Quantity); err != nil {
				return err
			}
		}
		return repos.StockAdjustmentRepo().Save(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementAdjust, adjustment.Quantity.IntPart())
	logger.L(ctx).Info("stock adjustment recorded",
		zap.String("adjustment_id", adjustment.ID.String()),
		zap.String("type", string(adjustment.AdjustmentType)),
		zap.String("quantity", adjustment.Quantity.String()))
	out := toStockAdjustmentResponse(adjustment)
	return &out, nil
}

// ListAdjustments lists recorded adjustments
func (s *StockService) ListAdjustments(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockAdjustmentResponse, error) {
	var items []StockAdjustmentResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.StockAdjustmentRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]StockAdjustmentResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toStockAdjustmentResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// CreateLot registers a raw material lot
func (s *StockService) CreateLot(ctx context.Context, tenantID uuid.UUID, req CreateMaterialLotRequest) (*MaterialLotResponse, error) {
	lot, err := inventory.NewMaterialLot(tenantID, req.RawMaterialID, req.SupplierID, req.Cost, req.CurrentStock, req.BatchNumber)
	if err != nil {
		return nil, err
	}
	lot.SupplierCode = req.SupplierCode

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.RawMaterialRepo().FindByIDForTenant(ctx, tenantID, req.RawMaterialID); err != nil {
			return err
		}
		if req.SupplierID != nil {
			if _, err := repos.SupplierRepo().FindByIDForTenant(ctx, tenantID, *req.SupplierID); err != nil {
				return err
			}
		}
		return repos.MaterialLotRepo().Save(ctx, lot)
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementLotReceipt, lot.CurrentStock.IntPart())
	resp := ToMaterialLotResponse(lot)
	return &resp, nil
}

// AdjustLot applies a signed delta to a lot
func (s *StockService) AdjustLot(ctx context.Context, tenantID, lotID uuid.UUID, req AdjustLotRequest) (*MaterialLotResponse, error) {
	var resp MaterialLotResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		lot, err := s.ledger.AdjustLot(ctx, repos, tenantID, lotID, req.Delta)
		if err != nil {
			return err
		}
		resp = ToMaterialLotResponse(lot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementAdjust, req.Delta.IntPart())
	return &resp, nil
}

// DeductRawMaterial consumes raw material from the cheapest lot that covers
// the quantity on its own
func (s *StockService) DeductRawMaterial(ctx context.Context, tenantID uuid.UUID, req DeductRawMaterialRequest) (resp *MaterialLotResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "StockService", "DeductRawMaterial",
		attribute.String("raw_material_id", req.RawMaterialID.String()),
		attribute.String("quantity", req.Quantity.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var out MaterialLotResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		lot, err := s.ledger.DeductRawMaterial(ctx, repos, tenantID, req.RawMaterialID, req.Quantity)
		if err != nil {
			return err
		}
		out = ToMaterialLotResponse(lot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementLotDeduct, req.Quantity.IntPart())
	logger.L(ctx).Info("raw material deducted",
		zap.String("raw_material_id", req.RawMaterialID.String()),
		zap.String("lot_id", out.ID.String()),
		zap.String("quantity", req.Quantity.String()))
	return &out, nil
}

// ListLots lists the lots of a raw material
func (s *StockService) ListLots(ctx context.Context, tenantID, rawMaterialID uuid.UUID) ([]MaterialLotResponse, error) {
	var items []MaterialLotResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.MaterialLotRepo().FindByRawMaterial(ctx, tenantID, rawMaterialID)
		if err != nil {
			return err
		}
		items = make([]MaterialLotResponse, 0, len(rows))
		for i := range rows {
			items = append(items, ToMaterialLotResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// TotalRawMaterialStock sums the stock of every lot of a raw material
func (s *StockService) TotalRawMaterialStock(ctx context.Context, tenantID, rawMaterialID uuid.UUID) (decimal.Decimal, error) {
	lots, err := s.ListLots(ctx, tenantID, rawMaterialID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.CurrentStock)
	}
	return total, nil
}

// StockByProduct lists the stock of a product at every location
func (s *StockService) StockByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]StockLevelResponse, error) {
	var items []StockLevelResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.InventoryRepo().FindByProduct(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		items = make([]StockLevelResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toStockLevelResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// StockByLocal lists the stock held at a location
func (s *StockService) StockByLocal(ctx context.Context, tenantID, localID uuid.UUID, filter shared.Filter) ([]StockLevelResponse, error) {
	var items []StockLevelResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, localID); err != nil {
			return err
		}
		rows, err := repos.InventoryRepo().FindByLocal(ctx, tenantID, localID, filter)
		if err != nil {
			return err
		}
		items = make([]StockLevelResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toStockLevelResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// CreateLocal creates a location with a tenant-unique name
func (s *StockService) CreateLocal(ctx context.Context, tenantID uuid.UUID, req CreateLocalRequest) (*LocalResponse, error) {
	local, err := inventory.NewLocal(tenantID, req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		_, err := repos.LocalRepo().FindByName(ctx, tenantID, local.Name)
		switch {
		case err == nil:
			return shared.NewDomainErrorf(shared.CodeAlreadyExists, "Local %q already exists", local.Name)
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}
		return repos.LocalRepo().Save(ctx, local)
	})
	if err != nil {
		return nil, err
	}
	resp := toLocalResponse(local)
	return &resp, nil
}

// ListLocals lists locations
func (s *StockService) ListLocals(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LocalResponse, error) {
	var items []LocalResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.LocalRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]LocalResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toLocalResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// FactoryLocal returns the factory location, creating it on first use
func (s *StockService) FactoryLocal(ctx context.Context, tenantID uuid.UUID) (*LocalResponse, error) {
	var resp LocalResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		local, err := s.ledger.FactoryLocal(ctx, repos, tenantID)
		if err != nil {
			return err
		}
		resp = toLocalResponse(local)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *StockService) resolveLocal(ctx context.Context, repos unitofwork.Repositories, tenantID uuid.UUID, localID *uuid.UUID) (uuid.UUID, error) {
	if localID == nil || *localID == uuid.Nil {
		local, err := s.ledger.FactoryLocal(ctx, repos, tenantID)
		if err != nil {
			return uuid.Nil, err
		}
		return local.ID, nil
	}
	if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, *localID); err != nil {
		return uuid.Nil, err
	}
	return *localID, nil
}

func ensureProduct(ctx context.Context, repos unitofwork.Repositories, tenantID, productID uuid.UUID) error {
	_, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, productID)
	return err
}
