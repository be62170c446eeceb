package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/cache"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTenantCache is a mock implementation of cache.TenantCache
type MockTenantCache struct {
	mock.Mock
}

func (m *MockTenantCache) IsKnown(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantCache) MarkKnown(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantCache) Forget(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ cache.TenantCache = (*MockTenantCache)(nil)

func newScope(t *testing.T) unitofwork.TransactionScope {
	t.Helper()
	return persistence.NewGormTransactionScope(testutil.NewSQLiteDB(t))
}

func TestTenantService_Create(t *testing.T) {
	ctx := context.Background()
	scope := newScope(t)
	tenantCache := cache.NewInMemoryTenantCache(time.Minute)
	svc := NewTenantService(scope, tenantCache, zap.NewNop())

	created, err := svc.Create(ctx, CreateTenantRequest{Name: "  Fanaticos  ", Description: "indumentaria deportiva"})
	require.NoError(t, err)
	assert.Equal(t, "Fanaticos", created.Name)

	known, err := tenantCache.IsKnown(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, known, "new tenants are cached")

	_, err = svc.Create(ctx, CreateTenantRequest{Name: "Fanaticos"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.Create(ctx, CreateTenantRequest{Name: "   "})
	assert.ErrorIs(t, err, shared.ErrValidation)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "indumentaria deportiva", got.Description)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTenantService_ListAndRename(t *testing.T) {
	ctx := context.Background()
	svc := NewTenantService(newScope(t), nil, nil)

	b, err := svc.Create(ctx, CreateTenantRequest{Name: "Beta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTenantRequest{Name: "Alfa"})
	require.NoError(t, err)

	list, err := svc.List(ctx, shared.Filter{Page: 1, PageSize: 20, OrderBy: "name", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].Name)

	_, err = svc.Rename(ctx, b.ID, RenameTenantRequest{Name: "Alfa"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	renamed, err := svc.Rename(ctx, b.ID, RenameTenantRequest{Name: "Gamma"})
	require.NoError(t, err)
	assert.Equal(t, "Gamma", renamed.Name)

	same, err := svc.Rename(ctx, b.ID, RenameTenantRequest{Name: "Gamma"})
	require.NoError(t, err)
	assert.Equal(t, b.ID, same.ID)
}

func TestTenantResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	scope := newScope(t)
	svc := NewTenantService(scope, nil, nil)
	tenant, err := svc.Create(ctx, CreateTenantRequest{Name: "Fanaticos"})
	require.NoError(t, err)

	resolver := NewTenantResolver(scope, cache.NewInMemoryTenantCache(time.Minute))

	t.Run("empty value is required", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "  ")
		assert.ErrorIs(t, err, shared.ErrTenantRequired)
	})

	t.Run("malformed value is not found", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "tenant-1")
		assert.ErrorIs(t, err, shared.ErrTenantNotFound)
	})

	t.Run("unknown tenant is not found", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, uuid.NewString())
		assert.ErrorIs(t, err, shared.ErrTenantNotFound)
	})

	t.Run("known tenant resolves", func(t *testing.T) {
		id, err := resolver.Resolve(ctx, tenant.ID.String())
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, id)
	})
}

func TestTenantResolver_CacheFirst(t *testing.T) {
	ctx := context.Background()
	scope := newScope(t)
	tenant, err := NewTenantService(scope, nil, nil).Create(ctx, CreateTenantRequest{Name: "Fanaticos"})
	require.NoError(t, err)

	t.Run("cache hit skips the database", func(t *testing.T) {
		id := uuid.New()
		mockCache := new(MockTenantCache)
		mockCache.On("IsKnown", mock.Anything, id).Return(true, nil).Once()

		got, err := NewTenantResolver(scope, mockCache).Resolve(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
		mockCache.AssertExpectations(t)
	})

	t.Run("miss is filled from the database", func(t *testing.T) {
		mockCache := new(MockTenantCache)
		mockCache.On("IsKnown", mock.Anything, tenant.ID).Return(false, nil).Once()
		mockCache.On("MarkKnown", mock.Anything, tenant.ID).Return(nil).Once()

		_, err := NewTenantResolver(scope, mockCache).Resolve(ctx, tenant.ID.String())
		require.NoError(t, err)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache errors fall back to the database", func(t *testing.T) {
		mockCache := new(MockTenantCache)
		mockCache.On("IsKnown", mock.Anything, tenant.ID).Return(false, errors.New("connection refused")).Once()
		mockCache.On("MarkKnown", mock.Anything, tenant.ID).Return(errors.New("connection refused")).Once()

		got, err := NewTenantResolver(scope, mockCache).Resolve(ctx, tenant.ID.String())
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, got)
		mockCache.AssertExpectations(t)
	})

	t.Run("unknown tenants are not cached", func(t *testing.T) {
		id := uuid.New()
		mockCache := new(MockTenantCache)
		mockCache.On("IsKnown", mock.Anything, id).Return(false, nil).Once()

		_, err := NewTenantResolver(scope, mockCache).Resolve(ctx, id.String())
		assert.ErrorIs(t, err, shared.ErrTenantNotFound)
		mockCache.AssertNotCalled(t, "MarkKnown", mock.Anything, id)
	})
}
