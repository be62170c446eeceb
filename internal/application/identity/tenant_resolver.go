package identity

import (
	"context"
	"strings"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/cache"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantResolver turns the raw tenant value of a request into a handle that
// is known to exist. Positive lookups are cached; a cache failure falls back
// to the database.
type TenantResolver struct {
	txScope unitofwork.TransactionScope
	cache   cache.TenantCache
}

// NewTenantResolver creates a resolver. A nil cache always hits the database.
func NewTenantResolver(txScope unitofwork.TransactionScope, tenantCache cache.TenantCache) *TenantResolver {
	return &TenantResolver{txScope: txScope, cache: tenantCache}
}

// Resolve validates raw and returns the tenant ID.
func (r *TenantResolver) Resolve(ctx context.Context, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, shared.ErrTenantRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, shared.NewDomainErrorf(shared.CodeTenantNotFound, "Tenant %q not found", raw)
	}

	if r.cache != nil {
		known, err := r.cache.IsKnown(ctx, id)
		if err != nil {
			logger.L(ctx).Warn("tenant cache lookup failed", zap.String("tenant_id", id.String()), zap.Error(err))
		} else if known {
			return id, nil
		}
	}

	var exists bool
	err = r.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		var err error
		exists, err = repos.TenantRepo().ExistsByID(ctx, id)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, shared.NewDomainErrorf(shared.CodeTenantNotFound, "Tenant %s not found", id)
	}

	if r.cache != nil {
		if err := r.cache.MarkKnown(ctx, id); err != nil {
			logger.L(ctx).Warn("tenant cache store failed", zap.String("tenant_id", id.String()), zap.Error(err))
		}
	}
	return id, nil
}

// Forget drops a tenant from the cache so the next lookup hits the database.
func (r *TenantResolver) Forget(ctx context.Context, id uuid.UUID) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Forget(ctx, id)
}
