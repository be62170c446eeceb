package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Stock movement kinds used as the "kind" attribute.
const (
	MovementAdjust     = "adjust"
	MovementTransfer   = "transfer"
	MovementLotDeduct  = "lot_deduct"
	MovementPackaging  = "packaging"
	MovementDelivery   = "delivery"
	MovementLotReceipt = "lot_receipt"
)

// BusinessMetrics counts the ledger-changing operations of the system.
// A nil *BusinessMetrics is valid and records nothing.
type BusinessMetrics struct {
	stockMovements   *Counter
	stockUnits       *Counter
	conversions      *Counter
	conversionAmount *Histogram
	payments         *Counter
	paymentAmount    *Histogram
}

// NewBusinessMetrics registers the business instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	var err error
	if bm.stockMovements, err = NewCounter(meter, "fanaticos_stock_movements_total",
		"Stock ledger movements applied", "{movements}"); err != nil {
		return nil, err
	}
	if bm.stockUnits, err = NewCounter(meter, "fanaticos_stock_units_total",
		"Absolute units moved by stock ledger movements", "{units}"); err != nil {
		return nil, err
	}
	if bm.conversions, err = NewCounter(meter, "fanaticos_quotation_conversions_total",
		"Quotations converted into sales", "{conversions}"); err != nil {
		return nil, err
	}
	if bm.conversionAmount, err = NewHistogram(meter, "fanaticos_conversion_amount",
		"Total of sales created from quotations", "{ARS}"); err != nil {
		return nil, err
	}
	if bm.payments, err = NewCounter(meter, "fanaticos_payments_total",
		"Payments posted to the account ledger", "{payments}"); err != nil {
		return nil, err
	}
	if bm.paymentAmount, err = NewHistogram(meter, "fanaticos_payment_amount",
		"Gross amount of posted payments", "{ARS}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordStockMovement counts one movement of quantity units.
func (bm *BusinessMetrics) RecordStockMovement(ctx context.Context, tenantID uuid.UUID, kind string, quantity int64) {
	if bm == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("kind", kind),
	}
	bm.stockMovements.Inc(ctx, attrs...)
	if quantity < 0 {
		quantity = -quantity
	}
	bm.stockUnits.Add(ctx, quantity, attrs...)
}

// RecordConversion counts a quotation converted into a sale with the given total.
func (bm *BusinessMetrics) RecordConversion(ctx context.Context, tenantID uuid.UUID, total decimal.Decimal) {
	if bm == nil {
		return
	}
	attr := attribute.String("tenant_id", tenantID.String())
	bm.conversions.Inc(ctx, attr)
	bm.conversionAmount.Record(ctx, total.InexactFloat64(), attr)
}

// RecordPayment counts a posted payment. direction is "in" for client
// payments and "out" for supplier payments.
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, tenantID uuid.UUID, method, direction string, amount decimal.Decimal) {
	if bm == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("payment_method", method),
		attribute.String("direction", direction),
	}
	bm.payments.Inc(ctx, attrs...)
	bm.paymentAmount.Record(ctx, amount.InexactFloat64(), attrs...)
}
