package catalog

import (
	"context"
	"testing"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	db       *gorm.DB
	tenantID uuid.UUID
	designs  *DesignService
	refs     *ReferenceService
	tela     *RawMaterialResponse
	hilo     *RawMaterialResponse
	corte    *ProcessResponse
	empaque  *ProcessResponse
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	scope := persistence.NewGormTransactionScope(db)
	f := &catalogFixture{
		db:       db,
		tenantID: uuid.New(),
		designs:  NewDesignService(scope),
		refs:     NewReferenceService(scope),
	}

	ctx := context.Background()
	var err error
	f.tela, err = f.refs.CreateRawMaterial(ctx, f.tenantID, CreateRawMaterialRequest{Name: "Tela", UnitOfMeasure: "metro"})
	require.NoError(t, err)
	f.hilo, err = f.refs.CreateRawMaterial(ctx, f.tenantID, CreateRawMaterialRequest{Name: "Hilo"})
	require.NoError(t, err)
	f.corte, err = f.refs.CreateProcess(ctx, f.tenantID, CreateProcessRequest{Name: "Corte", Cost: decimal.NewFromInt(5)})
	require.NoError(t, err)
	f.empaque, err = f.refs.CreateProcess(ctx, f.tenantID, CreateProcessRequest{Name: catalog.PackagingProcessName, Cost: decimal.NewFromInt(2)})
	require.NoError(t, err)
	return f
}

func intPtr(v int) *int { return &v }

func money(d decimal.Decimal) string { return shared.MoneyString(d) }

func TestDesignService_Create_ComputesCost(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	design, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
		Name: "Camiseta titular",
		Processes: []DesignProcessInput{
			{ProcessID: f.corte.ID, Order: 1},
		},
		Materials: []DesignMaterialInput{
			{RawMaterialID: f.tela.ID, Quantity: decimal.RequireFromString("1.5"), Cost: decimal.NewFromInt(10), Step: intPtr(1)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "20.00", money(design.CalculatedCost))
	require.Len(t, design.Processes, 1)
	assert.Equal(t, "Corte", design.Processes[0].ProcessName)
	assert.Equal(t, "5.00", money(design.Processes[0].Cost), "step without cost takes the process default")
	require.Len(t, design.Materials, 1)
	require.NotNil(t, design.Materials[0].DesignProcessID)
	assert.Equal(t, design.Processes[0].ID, *design.Materials[0].DesignProcessID)
}

func TestDesignService_RecomputeCost_IsIdempotent(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	design, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
		Name:      "Short",
		Processes: []DesignProcessInput{{ProcessID: f.corte.ID, Order: 1}},
		Materials: []DesignMaterialInput{{RawMaterialID: f.tela.ID, Quantity: decimal.RequireFromString("1.5"), Cost: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	first, err := f.designs.RecomputeCost(ctx, f.tenantID, design.ID)
	require.NoError(t, err)
	second, err := f.designs.RecomputeCost(ctx, f.tenantID, design.ID)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, "20.00", money(second))
}

func TestDesignService_RecomputeCost_SkipsDeletedReferences(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	design, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
		Name:      "Buzo",
		Processes: []DesignProcessInput{{ProcessID: f.corte.ID, Order: 1}},
		Materials: []DesignMaterialInput{{RawMaterialID: f.tela.ID, Quantity: decimal.NewFromInt(2), Cost: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", money(design.CalculatedCost))

	require.NoError(t, f.db.Exec("DELETE FROM raw_materials WHERE id = ?", f.tela.ID).Error)

	cost, err := f.designs.RecomputeCost(ctx, f.tenantID, design.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.00", money(cost))
}

func TestDesignService_LineMutationsRecompute(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	design, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{Name: "Medias"})
	require.NoError(t, err)
	assert.True(t, design.CalculatedCost.IsZero())

	design, err = f.designs.AddProcess(ctx, f.tenantID, design.ID, AddDesignProcessRequest{ProcessID: f.corte.ID, Order: 1})
	require.NoError(t, err)
	assert.Equal(t, "5.00", money(design.CalculatedCost))
	stepID := design.Processes[0].ID

	design, err = f.designs.AddMaterial(ctx, f.tenantID, design.ID, AddDesignMaterialRequest{
		RawMaterialID:   f.hilo.ID,
		Quantity:        decimal.NewFromInt(3),
		Cost:            decimal.RequireFromString("0.50"),
		DesignProcessID: &stepID,
	})
	require.NoError(t, err)
	assert.Equal(t, "6.50", money(design.CalculatedCost))
	lineID := design.Materials[0].ID

	design, err = f.designs.UpdateMaterial(ctx, f.tenantID, design.ID, lineID, UpdateDesignMaterialRequest{
		Quantity:        decimal.NewFromInt(4),
		Cost:            decimal.NewFromInt(1),
		DesignProcessID: &stepID,
	})
	require.NoError(t, err)
	assert.Equal(t, "9.00", money(design.CalculatedCost))

	override := decimal.NewFromInt(7)
	design, err = f.designs.UpdateProcess(ctx, f.tenantID, design.ID, stepID, UpdateDesignProcessRequest{Order: 1, Cost: override})
	require.NoError(t, err)
	assert.Equal(t, "11.00", money(design.CalculatedCost))

	design, err = f.designs.RemoveProcess(ctx, f.tenantID, design.ID, stepID)
	require.NoError(t, err)
	assert.Equal(t, "4.00", money(design.CalculatedCost))
	require.Len(t, design.Materials, 1)
	assert.Nil(t, design.Materials[0].DesignProcessID, "removing a step untags its materials")

	design, err = f.designs.RemoveMaterial(ctx, f.tenantID, design.ID, lineID)
	require.NoError(t, err)
	assert.True(t, design.CalculatedCost.IsZero())
}

func TestDesignService_Update_ReplacesRecipe(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	design, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
		Name:      "Camiseta",
		Processes: []DesignProcessInput{{ProcessID: f.corte.ID, Order: 1}},
		Materials: []DesignMaterialInput{{RawMaterialID: f.tela.ID, Quantity: decimal.NewFromInt(1), Cost: decimal.NewFromInt(10), Step: intPtr(1)}},
	})
	require.NoError(t, err)

	processes := []DesignProcessInput{{ProcessID: f.empaque.ID, Order: 1}}
	updated, err := f.designs.Update(ctx, f.tenantID, design.ID, UpdateDesignRequest{
		Name:      "Camiseta suplente",
		Processes: &processes,
	})
	require.NoError(t, err)

	assert.Equal(t, "Camiseta suplente", updated.Name)
	require.Len(t, updated.Processes, 1)
	assert.Equal(t, catalog.PackagingProcessName, updated.Processes[0].ProcessName)
	require.Len(t, updated.Materials, 1, "materials are kept when only steps are replaced")
	assert.Nil(t, updated.Materials[0].DesignProcessID)
	assert.Equal(t, "12.00", money(updated.CalculatedCost))
}

func TestDesignService_RejectsBadRecipes(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	t.Run("unknown process", func(t *testing.T) {
		_, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
			Name:      "X",
			Processes: []DesignProcessInput{{ProcessID: uuid.New(), Order: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown step", func(t *testing.T) {
		_, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
			Name:      "X",
			Materials: []DesignMaterialInput{{RawMaterialID: f.tela.ID, Quantity: decimal.NewFromInt(1), Step: intPtr(4)}},
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("non positive quantity", func(t *testing.T) {
		_, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{
			Name:      "X",
			Materials: []DesignMaterialInput{{RawMaterialID: f.tela.ID, Quantity: decimal.Zero}},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("failed create leaves nothing behind", func(t *testing.T) {
		list, err := f.designs.List(ctx, f.tenantID, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("other tenant cannot see the design", func(t *testing.T) {
		design, err := f.designs.Create(ctx, f.tenantID, CreateDesignRequest{Name: "Privado"})
		require.NoError(t, err)
		_, err = f.designs.GetByID(ctx, uuid.New(), design.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
