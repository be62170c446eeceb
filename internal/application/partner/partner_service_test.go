package partner

import (
	"context"
	"testing"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	ctx := context.Background()
	scope := persistence.NewGormTransactionScope(testutil.NewSQLiteDB(t))
	svc := NewClientService(scope)
	tenantID := uuid.New()

	created, err := svc.Create(ctx, tenantID, ClientRequest{
		Name:         "Club Atlético Sur",
		CUIT:         "30-12345678-9",
		City:         "Rosario",
		Province:     "Santa Fe",
		IVACondition: "Responsable Inscripto",
	})
	require.NoError(t, err)
	assert.Equal(t, "Responsable Inscripto", created.IVACondition)
	assert.Equal(t, tenantID, created.TenantID)

	t.Run("defaults to consumidor final", func(t *testing.T) {
		c, err := svc.Create(ctx, tenantID, ClientRequest{Name: "Juan Pérez"})
		require.NoError(t, err)
		assert.Equal(t, "Consumidor Final", c.IVACondition)
	})

	t.Run("rejects unknown iva condition", func(t *testing.T) {
		_, err := svc.Create(ctx, tenantID, ClientRequest{Name: "X", IVACondition: "Otro"})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("update replaces data", func(t *testing.T) {
		updated, err := svc.Update(ctx, tenantID, created.ID, ClientRequest{
			Name:         "Club Atlético Sur Unido",
			Phone:        "0341-555",
			IVACondition: "Exento",
		})
		require.NoError(t, err)
		assert.Equal(t, "Club Atlético Sur Unido", updated.Name)
		assert.Equal(t, "Exento", updated.IVACondition)
		assert.Empty(t, updated.City)

		got, err := svc.Get(ctx, tenantID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "0341-555", got.Phone)
	})

	t.Run("scoped to tenant", func(t *testing.T) {
		_, err := svc.Get(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = svc.Update(ctx, uuid.New(), created.ID, ClientRequest{Name: "Otro"})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		others, err := svc.List(ctx, uuid.New(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("list searches by name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "pérez"
		found, err := svc.List(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Juan Pérez", found[0].Name)
	})
}

func TestSupplierService(t *testing.T) {
	ctx := context.Background()
	scope := persistence.NewGormTransactionScope(testutil.NewSQLiteDB(t))
	svc := NewSupplierService(scope)
	tenantID := uuid.New()

	created, err := svc.Create(ctx, tenantID, SupplierRequest{Name: "Hilados SA", CUITCUIL: "30-11111111-1", Email: "ventas@hilados.com"})
	require.NoError(t, err)
	assert.Equal(t, "ventas@hilados.com", created.Email)

	_, err = svc.Create(ctx, tenantID, SupplierRequest{Name: "  "})
	assert.ErrorIs(t, err, shared.ErrValidation)

	updated, err := svc.Update(ctx, tenantID, created.ID, SupplierRequest{Name: "Hilados del Sur SA", Address: "Ruta 9 km 12"})
	require.NoError(t, err)
	assert.Equal(t, "Hilados del Sur SA", updated.Name)
	assert.Equal(t, "Ruta 9 km 12", updated.Address)

	list, err := svc.List(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	_, err = svc.Get(ctx, tenantID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
