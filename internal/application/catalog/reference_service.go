package catalog

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// ReferenceService maintains the catalog master data that designs and
// products point at: categories, sizes, colors, processes and raw materials.
type ReferenceService struct {
	txScope unitofwork.TransactionScope
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(txScope unitofwork.TransactionScope) *ReferenceService {
	return &ReferenceService{txScope: txScope}
}

// CreateCategory creates a category
func (s *ReferenceService) CreateCategory(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*ReferenceResponse, error) {
	category, err := catalog.NewCategory(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.CategoryRepo().Save(ctx, category)
	}); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// ListCategories lists categories
func (s *ReferenceService) ListCategories(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReferenceResponse, error) {
	var items []ReferenceResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.CategoryRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]ReferenceResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toCategoryResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// CreateSize creates a size
func (s *ReferenceService) CreateSize(ctx context.Context, tenantID uuid.UUID, req CreateSizeRequest) (*SizeResponse, error) {
	size, err := catalog.NewSize(tenantID, req.Name, req.CostPercentageIncrease)
	if err != nil {
		return nil, err
	}
	if err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.SizeRepo().Save(ctx, size)
	}); err != nil {
		return nil, err
	}
	resp := toSizeResponse(size)
	return &resp, nil
}

// ListSizes lists sizes
func (s *ReferenceService) ListSizes(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SizeResponse, error) {
	var items []SizeResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.SizeRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]SizeResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toSizeResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// CreateColor creates a color
func (s *ReferenceService) CreateColor(ctx context.Context, tenantID uuid.UUID, req CreateColorRequest) (*ReferenceResponse, error) {
	color, err := catalog.NewColor(tenantID, req.Name, req.HexCode)
	if err != nil {
		return nil, err
	}
	if err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.ColorRepo().Save(ctx, color)
	}); err != nil {
		return nil, err
	}
	resp := toColorResponse(color)
	return &resp, nil
}

// ListColors lists colors
func (s *ReferenceService) ListColors(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReferenceResponse, error) {
	var items []ReferenceResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.ColorRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]ReferenceResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toColorResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// CreateProcess creates a production process. Names are unique per tenant
// because production steps are resolved by name.
func (s *ReferenceService) CreateProcess(ctx context.Context, tenantID uuid.UUID, req CreateProcessRequest) (*ProcessResponse, error) {
	process, err := catalog.NewProcess(tenantID, req.Name, req.Cost)
	if err != nil {
		return nil, err
	}
	process.Description = req.Description
	process.IsInitialProcess = req.IsInitialProcess
	process.AppliesToMedias = req.AppliesToMedias
	process.AppliesToIndumentaria = req.AppliesToIndumentaria

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		_, err := repos.ProcessRepo().FindByName(ctx, tenantID, process.Name)
		switch {
		case err == nil:
			return shared.NewDomainErrorf(shared.CodeAlreadyExists, "Process %q already exists", process.Name)
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}
		return repos.ProcessRepo().Save(ctx, process)
	})
	if err != nil {
		return nil, err
	}
	resp := toProcessResponse(process)
	return &resp, nil
}

// ListProcesses lists processes
func (s *ReferenceService) ListProcesses(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProcessResponse, error) {
	var items []ProcessResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.ProcessRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]ProcessResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toProcessResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// CreateRawMaterial creates a raw material
func (s *ReferenceService) CreateRawMaterial(ctx context.Context, tenantID uuid.UUID, req CreateRawMaterialRequest) (*RawMaterialResponse, error) {
	material, err := catalog.NewRawMaterial(tenantID, req.Name, req.UnitOfMeasure)
	if err != nil {
		return nil, err
	}
	material.CategoryID = req.CategoryID
	if err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.RawMaterialRepo().Save(ctx, material)
	}); err != nil {
		return nil, err
	}
	resp := toRawMaterialResponse(material)
	return &resp, nil
}

// ListRawMaterials lists raw materials
func (s *ReferenceService) ListRawMaterials(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]RawMaterialResponse, error) {
	var items []RawMaterialResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.RawMaterialRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]RawMaterialResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toRawMaterialResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}
