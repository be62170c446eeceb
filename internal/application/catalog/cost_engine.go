package catalog

import (
	"context"
	"fmt"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecomputeDesignCost refreshes a design's calculated_cost from the recipe
// lines currently stored for it and returns the new value.
//
// Every path that mutates a DesignMaterial or DesignProcess calls it with the
// repository of the same transaction, so the stored cost never lags behind
// the recipe. Lines whose raw material or process no longer exists are not
// returned by the repository and so count as zero.
func RecomputeDesignCost(ctx context.Context, designs catalog.DesignRepository, tenantID, designID uuid.UUID) (decimal.Decimal, error) {
	materials, err := designs.FindMaterials(ctx, tenantID, designID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load design materials: %w", err)
	}
	processes, err := designs.FindProcesses(ctx, tenantID, designID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load design processes: %w", err)
	}

	cost := catalog.CalculateCost(materials, processes)
	if err := designs.UpdateCalculatedCost(ctx, tenantID, designID, cost); err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}
