package catalog

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DesignService manages designs and their recipe lines. Every mutation
// recomputes the design cost inside the same transaction.
type DesignService struct {
	txScope unitofwork.TransactionScope
}

// NewDesignService creates a new DesignService
func NewDesignService(txScope unitofwork.TransactionScope) *DesignService {
	return &DesignService{txScope: txScope}
}

// Create creates a design with its recipe and computes its cost
func (s *DesignService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDesignRequest) (resp *DesignResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "DesignService", "Create")
	defer func() { telemetry.EndSpan(span, err) }()

	design, err := catalog.NewDesign(tenantID, req.Name, req.ProductCode, req.Description, req.CategoryID)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if err := repos.DesignRepo().Save(ctx, design); err != nil {
			return err
		}
		processes, steps, err := buildProcesses(ctx, repos, design, req.Processes)
		if err != nil {
			return err
		}
		materials, err := buildMaterials(ctx, repos, design, req.Materials, steps)
		if err != nil {
			return err
		}
		if err := repos.DesignRepo().ReplaceRecipe(ctx, tenantID, design.ID, processes, materials); err != nil {
			return err
		}
		resp, err = recomputeAndLoad(ctx, repos, tenantID, design.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("design created",
		zap.String("design_id", design.ID.String()),
		zap.String("calculated_cost", resp.CalculatedCost.String()))
	return resp, nil
}

// Update edits a design. Recipe sets present in the request replace the
// stored ones; a replaced step set untags the kept material lines.
func (s *DesignService) Update(ctx context.Context, tenantID, designID uuid.UUID, req UpdateDesignRequest) (resp *DesignResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "DesignService", "Update",
		attribute.String("design_id", designID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		design, err := repos.DesignRepo().FindForUpdate(ctx, tenantID, designID)
		if err != nil {
			return err
		}
		if err := design.Update(req.Name, req.ProductCode, req.Description, req.CategoryID); err != nil {
			return err
		}
		if err := repos.DesignRepo().Save(ctx, design); err != nil {
			return err
		}

		if req.Processes != nil || req.Materials != nil {
			processes := design.Processes
			materials := design.Materials
			steps := stepsOf(processes)
			if req.Processes != nil {
				if processes, steps, err = buildProcesses(ctx, repos, design, *req.Processes); err != nil {
					return err
				}
				for i := range materials {
					materials[i].DesignProcessID = nil
				}
			}
			if req.Materials != nil {
				if materials, err = buildMaterials(ctx, repos, design, *req.Materials, steps); err != nil {
					return err
				}
			}
			if err := repos.DesignRepo().ReplaceRecipe(ctx, tenantID, design.ID, processes, materials); err != nil {
				return err
			}
		}

		resp, err = recomputeAndLoad(ctx, repos, tenantID, design.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID returns a design with its recipe
func (s *DesignService) GetByID(ctx context.Context, tenantID, designID uuid.UUID) (*DesignResponse, error) {
	var resp DesignResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		design, err := repos.DesignRepo().FindByIDForTenant(ctx, tenantID, designID)
		if err != nil {
			return err
		}
		resp = ToDesignResponse(design)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists the tenant's designs
func (s *DesignService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DesignListItemResponse, error) {
	var items []DesignListItemResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		designs, err := repos.DesignRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]DesignListItemResponse, 0, len(designs))
		for _, d := range designs {
			items = append(items, DesignListItemResponse{
				ID:             d.ID,
				Name:           d.Name,
				ProductCode:    d.ProductCode,
				CalculatedCost: d.CalculatedCost,
			})
		}
		return nil
	})
	return items, err
}

// RecomputeCost refreshes the stored cost of a design
func (s *DesignService) RecomputeCost(ctx context.Context, tenantID, designID uuid.UUID) (cost decimal.Decimal, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "DesignService", "RecomputeCost",
		attribute.String("design_id", designID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.DesignRepo().FindForUpdate(ctx, tenantID, designID); err != nil {
			return err
		}
		cost, err = RecomputeDesignCost(ctx, repos.DesignRepo(), tenantID, designID)
		return err
	})
	return cost, err
}

// AddMaterial adds a material line
func (s *DesignService) AddMaterial(ctx context.Context, tenantID, designID uuid.UUID, req AddDesignMaterialRequest) (*DesignResponse, error) {
	return s.mutate(ctx, tenantID, designID, "AddMaterial", func(repos unitofwork.Repositories, design *catalog.Design) error {
		if err := ensureRawMaterial(ctx, repos, tenantID, req.RawMaterialID); err != nil {
			return err
		}
		if err := ensureStepOfDesign(ctx, repos, design, req.DesignProcessID); err != nil {
			return err
		}
		line, err := catalog.NewDesignMaterial(design, req.RawMaterialID, req.Quantity, req.Cost, req.DesignProcessID)
		if err != nil {
			return err
		}
		return repos.DesignRepo().SaveMaterial(ctx, line)
	})
}

// UpdateMaterial edits a material line
func (s *DesignService) UpdateMaterial(ctx context.Context, tenantID, designID, lineID uuid.UUID, req UpdateDesignMaterialRequest) (*DesignResponse, error) {
	return s.mutate(ctx, tenantID, designID, "UpdateMaterial", func(repos unitofwork.Repositories, design *catalog.Design) error {
		line, err := findMaterialLine(ctx, repos, design, lineID)
		if err != nil {
			return err
		}
		if err := ensureStepOfDesign(ctx, repos, design, req.DesignProcessID); err != nil {
			return err
		}
		if err := line.Update(req.Quantity, req.Cost, req.DesignProcessID); err != nil {
			return err
		}
		return repos.DesignRepo().SaveMaterial(ctx, line)
	})
}

// RemoveMaterial deletes a material line
func (s *DesignService) RemoveMaterial(ctx context.Context, tenantID, designID, lineID uuid.UUID) (*DesignResponse, error) {
	return s.mutate(ctx, tenantID, designID, "RemoveMaterial", func(repos unitofwork.Repositories, design *catalog.Design) error {
		if _, err := findMaterialLine(ctx, repos, design, lineID); err != nil {
			return err
		}
		return repos.DesignRepo().DeleteMaterial(ctx, tenantID, lineID)
	})
}

// AddProcess adds a step. A nil cost takes the process default.
func (s *DesignService) AddProcess(ctx context.Context, tenantID, designID uuid.UUID, req AddDesignProcessRequest) (*DesignResponse, error) {
	return s.mutate(ctx, tenantID, designID, "AddProcess", func(repos unitofwork.Repositories, design *catalog.Design) error {
		process, err := findProcess(ctx, repos, tenantID, req.ProcessID)
		if err != nil {
			return err
		}
		for _, p := range design.Processes {
			if p.Order == req.Order {
				return shared.Validationf("Design already has a step with order %d", req.Order)
			}
		}
		line, err := catalog.NewDesignProcess(design, process, req.Order, req.Cost)
		if err != nil {
			return err
		}
		return repos.DesignRepo().SaveProcess(ctx, line)
	})
}

// UpdateProcess edits the order and cost of a step
func (s *DesignService) UpdateProcess(ctx context.Context, tenantID, designID, lineID uuid.UUID, req UpdateDesignProcessRequest) (*DesignResponse, error) {
	return s.mutate(ctx, tenantID, designID, "UpdateProcess", func(repos unitofwork.Repositories, design *catalog.Design) error {
		line, err := findProcessLine(ctx, repos, design, lineID)
		if err != nil {
			return err
		}
		if req.Cost.IsNegative() {
			return shared.Validationf("Process cost cannot be negative")
		}
		for _, p := range design.Processes {
			if p.ID != lineID && p.Order == req.Order {
				return shared.Validationf("Design already has a step with order %d", req.Order)
			}
		}
		line.Order = req.Order
		line.Cost = req.Cost
		line.Touch()
		return repos.DesignRepo().SaveProcess(ctx, line)
	})
}

// RemoveProcess deletes a step and untags the materials it consumed
func (s *DesignService) RemoveProcess(ctx context.Context, tenantID, designID, lineID uuid.UUID) (*DesignResponse, error) {
	return s.mutate(ctx, tenantID, designID, "RemoveProcess", func(repos unitofwork.Repositories, design *catalog.Design) error {
		if _, err := findProcessLine(ctx, repos, design, lineID); err != nil {
			return err
		}
		return repos.DesignRepo().DeleteProcess(ctx, tenantID, lineID)
	})
}

// mutate locks and loads the design, applies fn and recomputes the cost, all
// in one transaction
func (s *DesignService) mutate(ctx context.Context, tenantID, designID uuid.UUID, method string, fn func(unitofwork.Repositories, *catalog.Design) error) (resp *DesignResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "DesignService", method,
		attribute.String("design_id", designID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		design, err := repos.DesignRepo().FindForUpdate(ctx, tenantID, designID)
		if err != nil {
			return err
		}
		if err := fn(repos, design); err != nil {
			return err
		}
		resp, err = recomputeAndLoad(ctx, repos, tenantID, designID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func recomputeAndLoad(ctx context.Context, repos unitofwork.Repositories, tenantID, designID uuid.UUID) (*DesignResponse, error) {
	if _, err := RecomputeDesignCost(ctx, repos.DesignRepo(), tenantID, designID); err != nil {
		return nil, err
	}
	design, err := repos.DesignRepo().FindByIDForTenant(ctx, tenantID, designID)
	if err != nil {
		return nil, err
	}
	resp := ToDesignResponse(design)
	return &resp, nil
}

// buildProcesses turns step inputs into lines and returns the line ID of
// every step order
func buildProcesses(ctx context.Context, repos unitofwork.Repositories, design *catalog.Design, inputs []DesignProcessInput) ([]catalog.DesignProcess, map[int]uuid.UUID, error) {
	lines := make([]catalog.DesignProcess, 0, len(inputs))
	steps := make(map[int]uuid.UUID, len(inputs))
	for _, in := range inputs {
		if _, dup := steps[in.Order]; dup {
			return nil, nil, shared.Validationf("Step order %d is used twice", in.Order)
		}
		process, err := findProcess(ctx, repos, design.TenantID, in.ProcessID)
		if err != nil {
			return nil, nil, err
		}
		line, err := catalog.NewDesignProcess(design, process, in.Order, in.Cost)
		if err != nil {
			return nil, nil, err
		}
		steps[in.Order] = line.ID
		lines = append(lines, *line)
	}
	return lines, steps, nil
}

func buildMaterials(ctx context.Context, repos unitofwork.Repositories, design *catalog.Design, inputs []DesignMaterialInput, steps map[int]uuid.UUID) ([]catalog.DesignMaterial, error) {
	lines := make([]catalog.DesignMaterial, 0, len(inputs))
	for _, in := range inputs {
		if err := ensureRawMaterial(ctx, repos, design.TenantID, in.RawMaterialID); err != nil {
			return nil, err
		}
		var stepID *uuid.UUID
		if in.Step != nil {
			id, ok := steps[*in.Step]
			if !ok {
				return nil, shared.Validationf("Material references unknown step %d", *in.Step)
			}
			stepID = &id
		}
		line, err := catalog.NewDesignMaterial(design, in.RawMaterialID, in.Quantity, in.Cost, stepID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

func stepsOf(processes []catalog.DesignProcess) map[int]uuid.UUID {
	steps := make(map[int]uuid.UUID, len(processes))
	for _, p := range processes {
		steps[p.Order] = p.ID
	}
	return steps
}

func findProcess(ctx context.Context, repos unitofwork.Repositories, tenantID, processID uuid.UUID) (*catalog.Process, error) {
	process, err := repos.ProcessRepo().FindByIDForTenant(ctx, tenantID, processID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NotFoundf("Process %s not found", processID)
	}
	return process, err
}

func ensureRawMaterial(ctx context.Context, repos unitofwork.Repositories, tenantID, rawMaterialID uuid.UUID) error {
	_, err := repos.RawMaterialRepo().FindByIDForTenant(ctx, tenantID, rawMaterialID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFoundf("Raw material %s not found", rawMaterialID)
	}
	return err
}

func ensureStepOfDesign(ctx context.Context, repos unitofwork.Repositories, design *catalog.Design, stepID *uuid.UUID) error {
	if stepID == nil {
		return nil
	}
	_, err := findProcessLine(ctx, repos, design, *stepID)
	return err
}

func findMaterialLine(ctx context.Context, repos unitofwork.Repositories, design *catalog.Design, lineID uuid.UUID) (*catalog.DesignMaterial, error) {
	line, err := repos.DesignRepo().FindMaterialByID(ctx, design.TenantID, lineID)
	if err != nil {
		return nil, err
	}
	if line.DesignID != design.ID {
		return nil, shared.NotFoundf("Material line %s does not belong to design %s", lineID, design.ID)
	}
	return line, nil
}

func findProcessLine(ctx context.Context, repos unitofwork.Repositories, design *catalog.Design, lineID uuid.UUID) (*catalog.DesignProcess, error) {
	line, err := repos.DesignRepo().FindProcessLineByID(ctx, design.TenantID, lineID)
	if err != nil {
		return nil, err
	}
	if line.DesignID != design.ID {
		return nil, shared.NotFoundf("Design step %s does not belong to design %s", lineID, design.ID)
	}
	return line, nil
}
