package identity

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRepository stores tenants. It is the only repository that is not
// itself scoped to a tenant.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	// FindByName matches the name exactly.
	FindByName(ctx context.Context, name string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	// ExistsByID backs tenant resolution on every request.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, tenant *Tenant) error
}
