package catalog

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceRepository is the common shape of the simple tenant-scoped
// catalog tables.
type ReferenceRepository[T any] interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
}

// CategoryRepository persists categories
type CategoryRepository interface {
	ReferenceRepository[Category]
}

// SizeRepository persists sizes
type SizeRepository interface {
	ReferenceRepository[Size]
}

// ColorRepository persists colors
type ColorRepository interface {
	ReferenceRepository[Color]
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Color, error)
}

// ProcessRepository persists production processes
type ProcessRepository interface {
	ReferenceRepository[Process]
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Process, error)
}

// RawMaterialRepository persists raw materials
type RawMaterialRepository interface {
	ReferenceRepository[RawMaterial]
}

// DesignRepository persists designs and their recipe lines
type DesignRepository interface {
	// FindByIDForTenant loads the design with its process and material lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Design, error)
	// FindForUpdate is FindByIDForTenant holding a row lock on the design
	// until the transaction ends
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Design, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Design, error)
	// Save persists the design row only; recipe lines have their own methods
	Save(ctx context.Context, design *Design) error
	// UpdateCalculatedCost writes calculated_cost and nothing else
	UpdateCalculatedCost(ctx context.Context, tenantID, designID uuid.UUID, cost decimal.Decimal) error

	FindMaterials(ctx context.Context, tenantID, designID uuid.UUID) ([]DesignMaterial, error)
	FindProcesses(ctx context.Context, tenantID, designID uuid.UUID) ([]DesignProcess, error)
	FindMaterialByID(ctx context.Context, tenantID, id uuid.UUID) (*DesignMaterial, error)
	FindProcessLineByID(ctx context.Context, tenantID, id uuid.UUID) (*DesignProcess, error)
	// FindProcessByName finds the design step whose process has the given name
	FindProcessByName(ctx context.Context, tenantID, designID uuid.UUID, processName string) (*DesignProcess, error)
	// FindMaterialsForStep lists the material lines consumed by a design step,
	// with their raw material loaded
	FindMaterialsForStep(ctx context.Context, tenantID, designProcessID uuid.UUID) ([]DesignMaterial, error)

	SaveMaterial(ctx context.Context, line *DesignMaterial) error
	SaveProcess(ctx context.Context, line *DesignProcess) error
	DeleteMaterial(ctx context.Context, tenantID, id uuid.UUID) error
	// DeleteProcess removes the step and untags the material lines that
	// referenced it
	DeleteProcess(ctx context.Context, tenantID, id uuid.UUID) error
	// ReplaceRecipe drops every line of the design and inserts the given ones
	ReplaceRecipe(ctx context.Context, tenantID, designID uuid.UUID, processes []DesignProcess, materials []DesignMaterial) error
}

// ProductRepository persists products
type ProductRepository interface {
	// FindByIDForTenant loads the product with its design
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
	Save(ctx context.Context, product *Product) error
}
