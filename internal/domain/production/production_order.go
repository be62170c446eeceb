// Package production drives manufacturing jobs through the process steps
// of their design.
package production

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderStatus represents the status of a production order
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pendiente"
	OrderInProgress OrderStatus = "En Proceso"
	OrderCompleted  OrderStatus = "Completada"
	OrderCancelled  OrderStatus = "Cancelada"
)

// IsTerminal reports whether no further work can happen
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// OrderType is the product line being manufactured
type OrderType string

const (
	OrderTypeMedias       OrderType = "Medias"
	OrderTypeIndumentaria OrderType = "Indumentaria"
)

// IsValid checks if the type is known
func (t OrderType) IsValid() bool {
	return t == OrderTypeMedias || t == OrderTypeIndumentaria
}

// ProductionOrder is a manufacturing job. The design that drives it is the
// one of BaseProduct.
type ProductionOrder struct {
	shared.TenantAggregateRoot
	OrderNoteID           *uuid.UUID    `gorm:"type:uuid;index"`
	BaseProductID         *uuid.UUID    `gorm:"type:uuid;index"`
	Team                  string        `gorm:"type:varchar(100)"`
	TeamDetail            string        `gorm:"type:varchar(255)"`
	CustomizationDetails  Customization
	OpType                OrderType     `gorm:"type:varchar(20);not null;default:'Indumentaria'"`
	Status                OrderStatus   `gorm:"type:varchar(20);not null;default:'Pendiente';index"`
	EstimatedDeliveryDate *time.Time
	CurrentProcessID      *uuid.UUID `gorm:"type:uuid"`
	CurrentProcessName    string     `gorm:"type:varchar(100)"`
	Details               string     `gorm:"type:text"`

	Items []ProductionOrderItem `gorm:"foreignKey:ProductionOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionOrder) TableName() string {
	return "production_orders"
}

// ProductionOrderItem is a quantity of one product variant to manufacture
type ProductionOrderItem struct {
	shared.BaseEntity
	ProductionOrderID uuid.UUID     `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID     `gorm:"type:uuid;not null"`
	Quantity          int64         `gorm:"not null"`
	SizeID            *uuid.UUID    `gorm:"type:uuid"`
	ColorID           *uuid.UUID    `gorm:"type:uuid"`
	Customizations    Customization
}

// TableName returns the table name for GORM
func (ProductionOrderItem) TableName() string {
	return "production_order_items"
}

// OrderLine carries the fields of a new production order item
type OrderLine struct {
	ProductID      uuid.UUID
	Quantity       int64
	SizeID         *uuid.UUID
	ColorID        *uuid.UUID
	Customizations Customization
}

// OrderInput carries the fields of a new production order
type OrderInput struct {
	OrderNoteID           *uuid.UUID
	BaseProductID         *uuid.UUID
	Team                  string
	TeamDetail            string
	CustomizationDetails  Customization
	OpType                OrderType
	EstimatedDeliveryDate *time.Time
	Details               string
	Items                 []OrderLine
	UserID                *uuid.UUID
}

// NewProductionOrder validates and creates a pending order
func NewProductionOrder(tenantID uuid.UUID, in OrderInput) (*ProductionOrder, error) {
	if in.OpType == "" {
		in.OpType = OrderTypeIndumentaria
	}
	if !in.OpType.IsValid() {
		return nil, shared.Validationf("Unknown production order type %q", in.OpType)
	}
	if len(in.Items) == 0 {
		return nil, shared.Validationf("A production order needs at least one item")
	}
	if err := ValidateCustomization(in.CustomizationDetails); err != nil {
		return nil, err
	}
	order := &ProductionOrder{
		TenantAggregateRoot:   shared.NewTenantAggregateRootWithCreator(tenantID, in.UserID),
		OrderNoteID:           in.OrderNoteID,
		BaseProductID:         in.BaseProductID,
		Team:                  in.Team,
		TeamDetail:            in.TeamDetail,
		CustomizationDetails:  in.CustomizationDetails,
		OpType:                in.OpType,
		Status:                OrderPending,
		EstimatedDeliveryDate: in.EstimatedDeliveryDate,
		Details:               in.Details,
	}
	for _, l := range in.Items {
		if l.ProductID == uuid.Nil {
			return nil, shared.Validationf("Every production item needs a product")
		}
		if l.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
		if err := ValidateCustomization(l.Customizations); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, ProductionOrderItem{
			BaseEntity:        shared.NewBaseEntity(),
			ProductionOrderID: order.ID,
			ProductID:         l.ProductID,
			Quantity:          l.Quantity,
			SizeID:            l.SizeID,
			ColorID:           l.ColorID,
			Customizations:    l.Customizations,
		})
	}
	return order, nil
}

// TotalUnits returns Σ item quantities
func (o *ProductionOrder) TotalUnits() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// EnsureWorkable fails when the order is completed or cancelled
func (o *ProductionOrder) EnsureWorkable() error {
	if o.Status.IsTerminal() {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Production order is %s", o.Status)
	}
	return nil
}

// Start moves a pending order into production
func (o *ProductionOrder) Start() error {
	if o.Status != OrderPending {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Only pending orders can be started, status is %s", o.Status)
	}
	o.Status = OrderInProgress
	o.Touch()
	return nil
}

// Cancel stops an order that is not yet finished
func (o *ProductionOrder) Cancel() error {
	if err := o.EnsureWorkable(); err != nil {
		return err
	}
	o.Status = OrderCancelled
	o.Touch()
	return nil
}

// AdvanceTo records the step just completed. A pending order moves into
// production.
func (o *ProductionOrder) AdvanceTo(designProcessID uuid.UUID, processName string) {
	o.CurrentProcessID = &designProcessID
	o.CurrentProcessName = processName
	if o.Status == OrderPending {
		o.Status = OrderInProgress
	}
	o.Touch()
}

// Complete marks the order finished
func (o *ProductionOrder) Complete() {
	o.Status = OrderCompleted
	o.Touch()
}
