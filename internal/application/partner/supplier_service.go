package partner

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService handles supplier operations
type SupplierService struct {
	txScope unitofwork.TransactionScope
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(txScope unitofwork.TransactionScope) *SupplierService {
	return &SupplierService{txScope: txScope}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, req.Name, req.CUITCUIL)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.CUITCUIL, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.SupplierRepo().Save(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Get retrieves a supplier by ID
func (s *SupplierService) Get(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	var resp SupplierResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		supplier, err := repos.SupplierRepo().FindByIDForTenant(ctx, tenantID, supplierID)
		if err != nil {
			return err
		}
		resp = ToSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists suppliers
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierResponse, error) {
	var items []SupplierResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		suppliers, err := repos.SupplierRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			items = append(items, ToSupplierResponse(&suppliers[i]))
		}
		return nil
	})
	return items, err
}

// Update replaces a supplier's data
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	var resp SupplierResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		supplier, err := repos.SupplierRepo().FindByIDForTenant(ctx, tenantID, supplierID)
		if err != nil {
			return err
		}
		if err := supplier.Update(req.Name, req.CUITCUIL, req.Phone, req.Email, req.Address); err != nil {
			return err
		}
		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}
		resp = ToSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
