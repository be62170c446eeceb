package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDesignRepository implements DesignRepository using GORM
type GormDesignRepository struct {
	db *gorm.DB
}

// NewGormDesignRepository creates a new GormDesignRepository
func NewGormDesignRepository(db *gorm.DB) *GormDesignRepository {
	return &GormDesignRepository{db: db}
}

func orderBySteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_order ASC")
}

// FindByIDForTenant loads a design with its recipe lines
func (r *GormDesignRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Design, error) {
	var design catalog.Design
	err := scoped(ctx, r.db, tenantID).
		Preload("Processes", orderBySteps).
		Preload("Processes.Process").
		Preload("Materials").
		Preload("Materials.RawMaterial").
		Where("id = ?", id).
		First(&design).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &design, nil
}

// FindForUpdate locks the design row, then loads it with its recipe lines.
// Recipe edits and cost recomputations of one design serialize on the lock.
func (r *GormDesignRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Design, error) {
	var locked catalog.Design
	if err := forUpdate(scoped(ctx, r.db, tenantID)).Select("id").Where("id = ?", id).First(&locked).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return r.FindByIDForTenant(ctx, tenantID, id)
}

// FindAllForTenant lists designs without their recipe lines
func (r *GormDesignRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Design, error) {
	var designs []catalog.Design
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&catalog.Design{}), filter, DesignSortFields, "name")
	if err := query.Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// Save persists the design row
func (r *GormDesignRepository) Save(ctx context.Context, design *catalog.Design) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(design).Error
}

// UpdateCalculatedCost writes the derived cost and nothing else
func (r *GormDesignRepository) UpdateCalculatedCost(ctx context.Context, tenantID, designID uuid.UUID, cost decimal.Decimal) error {
	result := scoped(ctx, r.db, tenantID).
		Model(&catalog.Design{}).
		Where("id = ?", designID).
		Updates(map[string]interface{}{
			"calculated_cost": cost,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindMaterials lists the material lines whose raw material still exists
func (r *GormDesignRepository) FindMaterials(ctx context.Context, tenantID, designID uuid.UUID) ([]catalog.DesignMaterial, error) {
	var lines []catalog.DesignMaterial
	err := scoped(ctx, r.db, tenantID).
		Select("design_materials.*").
		Joins("JOIN raw_materials ON raw_materials.id = design_materials.raw_material_id").
		Where("design_materials.design_id = ?", designID).
		Preload("RawMaterial").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FindProcesses lists the process lines whose process still exists, in step order
func (r *GormDesignRepository) FindProcesses(ctx context.Context, tenantID, designID uuid.UUID) ([]catalog.DesignProcess, error) {
	var lines []catalog.DesignProcess
	err := scoped(ctx, r.db, tenantID).
		Select("design_processes.*").
		Joins("JOIN processes ON processes.id = design_processes.process_id").
		Where("design_processes.design_id = ?", designID).
		Order("design_processes.step_order ASC").
		Preload("Process").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FindMaterialByID finds a material line
func (r *GormDesignRepository) FindMaterialByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.DesignMaterial, error) {
	var line catalog.DesignMaterial
	if err := scoped(ctx, r.db, tenantID).Preload("RawMaterial").Where("id = ?", id).First(&line).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &line, nil
}

// FindProcessLineByID finds a process line
func (r *GormDesignRepository) FindProcessLineByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.DesignProcess, error) {
	var line catalog.DesignProcess
	if err := scoped(ctx, r.db, tenantID).Preload("Process").Where("id = ?", id).First(&line).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &line, nil
}

// FindProcessByName finds the first step of the design whose process has
// the given name
func (r *GormDesignRepository) FindProcessByName(ctx context.Context, tenantID, designID uuid.UUID, processName string) (*catalog.DesignProcess, error) {
	var line catalog.DesignProcess
	err := scoped(ctx, r.db, tenantID).
		Select("design_processes.*").
		Joins("JOIN processes ON processes.id = design_processes.process_id").
		Where("design_processes.design_id = ? AND processes.name = ?", designID, strings.TrimSpace(processName)).
		Order("design_processes.step_order ASC").
		Preload("Process").
		First(&line).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &line, nil
}

// FindMaterialsForStep lists the material lines consumed by a step
func (r *GormDesignRepository) FindMaterialsForStep(ctx context.Context, tenantID, designProcessID uuid.UUID) ([]catalog.DesignMaterial, error) {
	var lines []catalog.DesignMaterial
	err := scoped(ctx, r.db, tenantID).
		Select("design_materials.*").
		Joins("JOIN raw_materials ON raw_materials.id = design_materials.raw_material_id").
		Where("design_materials.design_process_id = ?", designProcessID).
		Preload("RawMaterial").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// SaveMaterial creates or updates a material line
func (r *GormDesignRepository) SaveMaterial(ctx context.Context, line *catalog.DesignMaterial) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(line).Error
}

// SaveProcess creates or updates a process line
func (r *GormDesignRepository) SaveProcess(ctx context.Context, line *catalog.DesignProcess) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(line).Error
}

// DeleteMaterial removes a material line
func (r *GormDesignRepository) DeleteMaterial(ctx context.Context, tenantID, id uuid.UUID) error {
	result := scoped(ctx, r.db, tenantID).Where("id = ?", id).Delete(&catalog.DesignMaterial{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteProcess removes a process line and untags its material lines
func (r *GormDesignRepository) DeleteProcess(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := scoped(ctx, r.db, tenantID).
		Model(&catalog.DesignMaterial{}).
		Where("design_process_id = ?", id).
		Update("design_process_id", nil).Error; err != nil {
		return err
	}
	result := scoped(ctx, r.db, tenantID).Where("id = ?", id).Delete(&catalog.DesignProcess{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplaceRecipe drops every line of the design and inserts the given ones.
// Processes are inserted first so materials may reference them.
func (r *GormDesignRepository) ReplaceRecipe(ctx context.Context, tenantID, designID uuid.UUID, processes []catalog.DesignProcess, materials []catalog.DesignMaterial) error {
	if err := scoped(ctx, r.db, tenantID).Where("design_id = ?", designID).Delete(&catalog.DesignMaterial{}).Error; err != nil {
		return err
	}
	if err := scoped(ctx, r.db, tenantID).Where("design_id = ?", designID).Delete(&catalog.DesignProcess{}).Error; err != nil {
		return err
	}
	if len(processes) > 0 {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&processes).Error; err != nil {
			return err
		}
	}
	if len(materials) > 0 {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&materials).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ catalog.DesignRepository = (*GormDesignRepository)(nil)
