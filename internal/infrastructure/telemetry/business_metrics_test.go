package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	return sums
}

func TestBusinessMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	bm, err := NewBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	tenantID := uuid.New()
	bm.RecordStockMovement(ctx, tenantID, MovementAdjust, -5)
	bm.RecordStockMovement(ctx, tenantID, MovementTransfer, 10)
	bm.RecordConversion(ctx, tenantID, decimal.NewFromInt(180))
	bm.RecordPayment(ctx, tenantID, "Efectivo", "in", decimal.NewFromInt(60))

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums["fanaticos_stock_movements_total"])
	assert.Equal(t, int64(15), sums["fanaticos_stock_units_total"])
	assert.Equal(t, int64(1), sums["fanaticos_quotation_conversions_total"])
	assert.Equal(t, int64(1), sums["fanaticos_payments_total"])
}

func TestBusinessMetrics_NilIsNoop(t *testing.T) {
	var bm *BusinessMetrics
	assert.NotPanics(t, func() {
		bm.RecordStockMovement(context.Background(), uuid.New(), MovementDelivery, 1)
		bm.RecordConversion(context.Background(), uuid.New(), decimal.Zero)
		bm.RecordPayment(context.Background(), uuid.New(), "Efectivo", "out", decimal.Zero)
	})
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	_, err := NewBusinessMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}
