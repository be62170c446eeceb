//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	catalogapp "github.com/ejarriada/Fanaticos/internal/application/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesign_ConcurrentMaterialLinesKeepCost(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	tenantID := tdb.CreateTenant("Fanaticos")

	refs := catalogapp.NewReferenceService(tdb.Scope())
	designs := catalogapp.NewDesignService(tdb.Scope())

	design, err := designs.Create(ctx, tenantID, catalogapp.CreateDesignRequest{Name: "Camiseta alternativa"})
	require.NoError(t, err)

	const lines = 8
	materials := make([]*catalogapp.RawMaterialResponse, lines)
	for i := range materials {
		materials[i], err = refs.CreateRawMaterial(ctx, tenantID, catalogapp.CreateRawMaterialRequest{Name: fmt.Sprintf("Tela %d", i)})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, lines)
	for i := 0; i < lines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = designs.AddMaterial(ctx, tenantID, design.ID, catalogapp.AddDesignMaterialRequest{
				RawMaterialID: materials[i].ID,
				Quantity:      decimal.NewFromInt(2),
				Cost:          decimal.NewFromInt(int64(i + 1)),
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	// 2 × (1 + 2 + ... + 8)
	stored, err := designs.GetByID(ctx, tenantID, design.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Materials, lines)
	assert.True(t, decimal.NewFromInt(72).Equal(stored.CalculatedCost), "calculated_cost %s", stored.CalculatedCost)
}
