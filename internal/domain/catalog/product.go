package catalog

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable or manufacturable unit. Manufactured products link
// to the Design that prices and produces them.
type Product struct {
	shared.BaseAggregateRoot
	TenantID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_tenant_sku,priority:1"`
	CreatedBy           *uuid.UUID      `gorm:"type:uuid"`
	Name                string          `gorm:"type:varchar(200);not null"`
	SKU                 string          `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_products_tenant_sku,priority:2"`
	DesignID            *uuid.UUID      `gorm:"type:uuid;index"`
	SizeID              *uuid.UUID      `gorm:"type:uuid;index"`
	FactoryPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ClubPrice           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SuggestedFinalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Weight              decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Waste               decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	IsManufactured      bool            `gorm:"not null"`

	Design *Design `gorm:"foreignKey:DesignID;references:ID"`
	Colors []Color `gorm:"many2many:product_colors;"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductPricing groups the price fields of a product
type ProductPricing struct {
	FactoryPrice        decimal.Decimal
	ClubPrice           decimal.Decimal
	SuggestedFinalPrice decimal.Decimal
}

// NewProduct creates a product. The SKU may be empty and assigned later by
// the SKU generator.
func NewProduct(tenantID uuid.UUID, name, sku string, designID *uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Product name cannot be empty")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Name:              name,
		SKU:               strings.TrimSpace(sku),
		DesignID:          designID,
		IsManufactured:    designID != nil,
	}, nil
}

// SetPricing validates and sets the product prices
func (p *Product) SetPricing(pricing ProductPricing) error {
	for _, v := range []decimal.Decimal{pricing.FactoryPrice, pricing.ClubPrice, pricing.SuggestedFinalPrice} {
		if v.IsNegative() {
			return shared.Validationf("Product prices cannot be negative")
		}
	}
	p.FactoryPrice = pricing.FactoryPrice
	p.ClubPrice = pricing.ClubPrice
	p.SuggestedFinalPrice = pricing.SuggestedFinalPrice
	p.Touch()
	return nil
}

// HasDesign reports whether the product is linked to a design
func (p *Product) HasDesign() bool {
	return p.DesignID != nil && *p.DesignID != uuid.Nil
}
