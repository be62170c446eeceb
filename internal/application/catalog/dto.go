package catalog

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Reference DTOs ====================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateSizeRequest represents a request to create a size
type CreateSizeRequest struct {
	Name                   string          `json:"name" binding:"required,min=1,max=50"`
	CostPercentageIncrease decimal.Decimal `json:"cost_percentage_increase"`
}

// CreateColorRequest represents a request to create a color
type CreateColorRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=50"`
	HexCode string `json:"hex_code" binding:"omitempty,hexcolor,len=7"`
}

// CreateProcessRequest represents a request to create a production process
type CreateProcessRequest struct {
	Name                  string          `json:"name" binding:"required,min=1,max=100"`
	Description           string          `json:"description"`
	Cost                  decimal.Decimal `json:"cost"`
	IsInitialProcess      bool            `json:"is_initial_process"`
	AppliesToMedias       bool            `json:"applies_to_medias"`
	AppliesToIndumentaria bool            `json:"applies_to_indumentaria"`
}

// CreateRawMaterialRequest represents a request to create a raw material
type CreateRawMaterialRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=100"`
	CategoryID    *uuid.UUID `json:"category_id"`
	UnitOfMeasure string     `json:"unit_of_measure" binding:"max=20"`
}

// ReferenceResponse is the response shape of categories and colors
type ReferenceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	HexCode   string    `json:"hex_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SizeResponse represents a size in API responses
type SizeResponse struct {
	ID                     uuid.UUID       `json:"id"`
	Name                   string          `json:"name"`
	CostPercentageIncrease decimal.Decimal `json:"cost_percentage_increase"`
}

// ProcessResponse represents a production process in API responses
type ProcessResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	Cost                  decimal.Decimal `json:"cost"`
	IsInitialProcess      bool            `json:"is_initial_process"`
	AppliesToMedias       bool            `json:"applies_to_medias"`
	AppliesToIndumentaria bool            `json:"applies_to_indumentaria"`
}

// RawMaterialResponse represents a raw material in API responses
type RawMaterialResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	UnitOfMeasure string     `json:"unit_of_measure"`
}

func toCategoryResponse(c *catalog.Category) ReferenceResponse {
	return ReferenceResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toColorResponse(c *catalog.Color) ReferenceResponse {
	return ReferenceResponse{ID: c.ID, Name: c.Name, HexCode: c.HexCode, CreatedAt: c.CreatedAt}
}

func toSizeResponse(s *catalog.Size) SizeResponse {
	return SizeResponse{ID: s.ID, Name: s.Name, CostPercentageIncrease: s.CostPercentageIncrease}
}

func toProcessResponse(p *catalog.Process) ProcessResponse {
	return ProcessResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Description:           p.Description,
		Cost:                  p.Cost,
		IsInitialProcess:      p.IsInitialProcess,
		AppliesToMedias:       p.AppliesToMedias,
		AppliesToIndumentaria: p.AppliesToIndumentaria,
	}
}

func toRawMaterialResponse(m *catalog.RawMaterial) RawMaterialResponse {
	return RawMaterialResponse{ID: m.ID, Name: m.Name, CategoryID: m.CategoryID, UnitOfMeasure: m.UnitOfMeasure}
}

// ==================== Design DTOs ====================

// DesignProcessInput describes one step of a recipe. A nil cost takes the
// process default.
type DesignProcessInput struct {
	ProcessID uuid.UUID        `json:"process_id" binding:"required"`
	Order     int              `json:"order" binding:"min=0"`
	Cost      *decimal.Decimal `json:"cost"`
}

// DesignMaterialInput describes one material line of a recipe. Step refers
// to the Order of the DesignProcessInput consuming the material.
type DesignMaterialInput struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Cost          decimal.Decimal `json:"cost"`
	Step          *int            `json:"step"`
}

// CreateDesignRequest represents a request to create a design with its recipe
type CreateDesignRequest struct {
	Name        string                `json:"name" binding:"required,min=1,max=200"`
	ProductCode string                `json:"product_code" binding:"max=50"`
	Description string                `json:"description"`
	CategoryID  *uuid.UUID            `json:"category_id"`
	Processes   []DesignProcessInput  `json:"processes" binding:"dive"`
	Materials   []DesignMaterialInput `json:"materials" binding:"dive"`
}

// UpdateDesignRequest updates a design. Nil line sets leave the recipe as it
// is; non-nil sets replace it.
type UpdateDesignRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=200"`
	ProductCode string                 `json:"product_code" binding:"max=50"`
	Description string                 `json:"description"`
	CategoryID  *uuid.UUID             `json:"category_id"`
	Processes   *[]DesignProcessInput  `json:"processes"`
	Materials   *[]DesignMaterialInput `json:"materials"`
}

// AddDesignMaterialRequest adds a material line to a design
type AddDesignMaterialRequest struct {
	RawMaterialID   uuid.UUID       `json:"raw_material_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Cost            decimal.Decimal `json:"cost"`
	DesignProcessID *uuid.UUID      `json:"design_process_id"`
}

// UpdateDesignMaterialRequest edits a material line
type UpdateDesignMaterialRequest struct {
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Cost            decimal.Decimal `json:"cost"`
	DesignProcessID *uuid.UUID      `json:"design_process_id"`
}

// AddDesignProcessRequest adds a step to a design
type AddDesignProcessRequest struct {
	ProcessID uuid.UUID        `json:"process_id" binding:"required"`
	Order     int              `json:"order" binding:"min=0"`
	Cost      *decimal.Decimal `json:"cost"`
}

// UpdateDesignProcessRequest edits a step
type UpdateDesignProcessRequest struct {
	Order int             `json:"order" binding:"min=0"`
	Cost  decimal.Decimal `json:"cost"`
}

// DesignProcessResponse represents a design step
type DesignProcessResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProcessID   uuid.UUID       `json:"process_id"`
	ProcessName string          `json:"process_name"`
	Order       int             `json:"order"`
	Cost        decimal.Decimal `json:"cost"`
}

// DesignMaterialResponse represents a design material line
type DesignMaterialResponse struct {
	ID              uuid.UUID       `json:"id"`
	RawMaterialID   uuid.UUID       `json:"raw_material_id"`
	MaterialName    string          `json:"material_name"`
	DesignProcessID *uuid.UUID      `json:"design_process_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Cost            decimal.Decimal `json:"cost"`
}

// DesignResponse represents a design with its recipe
type DesignResponse struct {
	ID             uuid.UUID                `json:"id"`
	Name           string                   `json:"name"`
	ProductCode    string                   `json:"product_code"`
	Description    string                   `json:"description"`
	CategoryID     *uuid.UUID               `json:"category_id,omitempty"`
	CalculatedCost decimal.Decimal          `json:"calculated_cost"`
	Processes      []DesignProcessResponse  `json:"processes"`
	Materials      []DesignMaterialResponse `json:"materials"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// ToDesignResponse converts a design with loaded lines to its response
func ToDesignResponse(d *catalog.Design) DesignResponse {
	resp := DesignResponse{
		ID:             d.ID,
		Name:           d.Name,
		ProductCode:    d.ProductCode,
		Description:    d.Description,
		CategoryID:     d.CategoryID,
		CalculatedCost: d.CalculatedCost,
		Processes:      make([]DesignProcessResponse, 0, len(d.Processes)),
		Materials:      make([]DesignMaterialResponse, 0, len(d.Materials)),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	for i := range d.Processes {
		p := &d.Processes[i]
		resp.Processes = append(resp.Processes, DesignProcessResponse{
			ID:          p.ID,
			ProcessID:   p.ProcessID,
			ProcessName: p.ProcessName(),
			Order:       p.Order,
			Cost:        p.Cost,
		})
	}
	for i := range d.Materials {
		m := &d.Materials[i]
		resp.Materials = append(resp.Materials, DesignMaterialResponse{
			ID:              m.ID,
			RawMaterialID:   m.RawMaterialID,
			MaterialName:    m.MaterialName(),
			DesignProcessID: m.DesignProcessID,
			Quantity:        m.Quantity,
			Cost:            m.Cost,
		})
	}
	return resp
}

// DesignListItemResponse is the list shape of a design
type DesignListItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	ProductCode    string          `json:"product_code"`
	CalculatedCost decimal.Decimal `json:"calculated_cost"`
}

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a product. An empty
// SKU is generated from the name.
type CreateProductRequest struct {
	Name                string          `json:"name" binding:"required,min=1,max=200"`
	SKU                 string          `json:"sku" binding:"max=100"`
	DesignID            *uuid.UUID      `json:"design_id"`
	SizeID              *uuid.UUID      `json:"size_id"`
	ColorIDs            []uuid.UUID     `json:"color_ids"`
	FactoryPrice        decimal.Decimal `json:"factory_price"`
	ClubPrice           decimal.Decimal `json:"club_price"`
	SuggestedFinalPrice decimal.Decimal `json:"suggested_final_price"`
	Weight              decimal.Decimal `json:"weight"`
	Waste               decimal.Decimal `json:"waste"`
	IsManufactured      *bool           `json:"is_manufactured"`
	CreatedBy           *uuid.UUID      `json:"-"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	SKU                 string          `json:"sku"`
	DesignID            *uuid.UUID      `json:"design_id,omitempty"`
	SizeID              *uuid.UUID      `json:"size_id,omitempty"`
	Colors              []string        `json:"colors"`
	FactoryPrice        decimal.Decimal `json:"factory_price"`
	ClubPrice           decimal.Decimal `json:"club_price"`
	SuggestedFinalPrice decimal.Decimal `json:"suggested_final_price"`
	Weight              decimal.Decimal `json:"weight"`
	Waste               decimal.Decimal `json:"waste"`
	IsManufactured      bool            `json:"is_manufactured"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ToProductResponse converts a product to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Name)
	}
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		SKU:                 p.SKU,
		DesignID:            p.DesignID,
		SizeID:              p.SizeID,
		Colors:              colors,
		FactoryPrice:        p.FactoryPrice,
		ClubPrice:           p.ClubPrice,
		SuggestedFinalPrice: p.SuggestedFinalPrice,
		Weight:              p.Weight,
		Waste:               p.Waste,
		IsManufactured:      p.IsManufactured,
		CreatedAt:           p.CreatedAt,
	}
}
