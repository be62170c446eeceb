package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	txScope unitofwork.TransactionScope
	now     func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(txScope unitofwork.TransactionScope) *ProductService {
	return &ProductService{txScope: txScope, now: time.Now}
}

// Create creates a product, generating its SKU when none is given
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.Name, req.SKU, req.DesignID)
	if err != nil {
		return nil, err
	}
	if err := product.SetPricing(catalog.ProductPricing{
		FactoryPrice:        req.FactoryPrice,
		ClubPrice:           req.ClubPrice,
		SuggestedFinalPrice: req.SuggestedFinalPrice,
	}); err != nil {
		return nil, err
	}
	if req.Weight.IsNegative() || req.Waste.IsNegative() {
		return nil, shared.Validationf("Weight and waste cannot be negative")
	}
	product.Weight = req.Weight
	product.Waste = req.Waste
	product.SizeID = req.SizeID
	product.CreatedBy = req.CreatedBy
	if req.IsManufactured != nil {
		product.IsManufactured = *req.IsManufactured
	}

	var resp ProductResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		products := repos.ProductRepo()
		if product.DesignID != nil {
			if _, err := repos.DesignRepo().FindByIDForTenant(ctx, tenantID, *product.DesignID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NotFoundf("Design %s not found", *product.DesignID)
				}
				return err
			}
		}
		if len(req.ColorIDs) > 0 {
			colors, err := repos.ColorRepo().FindByIDs(ctx, tenantID, req.ColorIDs)
			if err != nil {
				return err
			}
			if len(colors) != len(uniqueIDs(req.ColorIDs)) {
				return shared.NotFoundf("One or more colors were not found")
			}
			product.Colors = colors
		}

		if product.SKU == "" {
			sku, err := catalog.GenerateSKU(ctx, product.Name, s.now(), func(ctx context.Context, sku string) (bool, error) {
				return products.ExistsBySKU(ctx, tenantID, sku)
			})
			if err != nil {
				return err
			}
			product.SKU = sku
		} else {
			taken, err := products.ExistsBySKU(ctx, tenantID, product.SKU)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainErrorf(shared.CodeAlreadyExists, "SKU %s is already in use", product.SKU)
			}
		}

		if err := products.Save(ctx, product); err != nil {
			return err
		}
		resp = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))
	return &resp, nil
}

// GetByID returns a product
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	var resp ProductResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		resp = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists the tenant's products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	var items []ProductResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		products, err := repos.ProductRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]ProductResponse, 0, len(products))
		for i := range products {
			items = append(items, ToProductResponse(&products[i]))
		}
		return nil
	})
	return items, err
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
