package persistence

import (
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	gormReferenceRepository[partner.Client]
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	repo := newReferenceRepository[partner.Client](db)
	repo.sortable = PartnerSortFields
	return &GormClientRepository{repo}
}

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	gormReferenceRepository[partner.Supplier]
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	repo := newReferenceRepository[partner.Supplier](db)
	repo.sortable = PartnerSortFields
	return &GormSupplierRepository{repo}
}

var (
	_ partner.ClientRepository   = (*GormClientRepository)(nil)
	_ partner.SupplierRepository = (*GormSupplierRepository)(nil)
)
