// Package identity manages tenants and resolves the tenant handle every
// business operation is scoped to.
package identity

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/identity"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService handles tenant management operations
type TenantService struct {
	txScope unitofwork.TransactionScope
	cache   cache.TenantCache
	logger  *zap.Logger
}

// NewTenantService creates a new tenant service. A nil cache is allowed.
func NewTenantService(txScope unitofwork.TransactionScope, tenantCache cache.TenantCache, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{txScope: txScope, cache: tenantCache, logger: logger}
}

// Create creates a new tenant with a unique name
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	s.logger.Info("Creating new tenant", zap.String("name", req.Name))

	tenant, err := identity.NewTenant(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		exists, err := repos.TenantRepo().ExistsByName(ctx, tenant.Name)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainErrorf(shared.CodeAlreadyExists, "Tenant %q already exists", tenant.Name)
		}
		return repos.TenantRepo().Save(ctx, tenant)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.MarkKnown(ctx, tenant.ID); err != nil {
			s.logger.Warn("Failed to cache new tenant", zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
		}
	}
	s.logger.Info("Tenant created successfully",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name))
	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// Get retrieves a tenant by ID
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	var resp TenantResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		tenant, err := repos.TenantRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToTenantResponse(tenant)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists tenants
func (s *TenantService) List(ctx context.Context, filter shared.Filter) ([]TenantResponse, error) {
	var items []TenantResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		tenants, err := repos.TenantRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		items = make([]TenantResponse, 0, len(tenants))
		for i := range tenants {
			items = append(items, ToTenantResponse(&tenants[i]))
		}
		return nil
	})
	return items, err
}

// Rename changes a tenant's name, keeping names unique
func (s *TenantService) Rename(ctx context.Context, id uuid.UUID, req RenameTenantRequest) (*TenantResponse, error) {
	var resp TenantResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		tenant, err := repos.TenantRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tenant.Rename(req.Name); err != nil {
			return err
		}
		existing, err := repos.TenantRepo().FindByName(ctx, tenant.Name)
		switch {
		case err == nil && existing.ID != tenant.ID:
			return shared.NewDomainErrorf(shared.CodeAlreadyExists, "Tenant %q already exists", tenant.Name)
		case err != nil && !errors.Is(err, shared.ErrNotFound):
			return err
		}
		if err := repos.TenantRepo().Save(ctx, tenant); err != nil {
			return err
		}
		resp = ToTenantResponse(tenant)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Tenant renamed", zap.String("tenant_id", id.String()), zap.String("name", resp.Name))
	return &resp, nil
}
