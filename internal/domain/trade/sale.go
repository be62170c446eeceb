package trade

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment method names with special meaning
const (
	// PaymentMethodToBeDefined is set on sales converted from quotations
	PaymentMethodToBeDefined = "A definir"
	PaymentMethodCash        = "Efectivo"
	PaymentMethodTransfer    = "Transferencia"
	PaymentMethodMercadoPago = "Mercado Pago"
)

// IsImmediatePayment reports whether a sale paid with method settles at
// creation and must be posted to the ledger right away
func IsImmediatePayment(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodMercadoPago:
		return true
	}
	return false
}

// SaleMarkup is the fixed factor applied to design cost when pricing a
// converted quotation
var SaleMarkup = decimal.RequireFromString("1.20")

// PriceFromCost returns cost × SaleMarkup rounded to cents
func PriceFromCost(cost decimal.Decimal) decimal.Decimal {
	return shared.RoundMoney(cost.Mul(SaleMarkup))
}

// PaymentStatus summarises how much of a sale has been paid
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Pagado"
	PaymentStatusPartial PaymentStatus = "Pago Parcial"
	PaymentStatusPending PaymentStatus = "Pendiente de Pago"
)

// PaymentStatusFor derives the payment status from total and paid amounts
func PaymentStatusFor(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case paid.IsPositive():
		return PaymentStatusPartial
	}
	return PaymentStatusPending
}

// Sale is a confirmed transaction with a client
type Sale struct {
	shared.TenantAggregateRoot
	ClientID           *uuid.UUID      `gorm:"type:uuid;index"`
	LocalID            *uuid.UUID      `gorm:"type:uuid;index"`
	RelatedQuotationID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Date               time.Time       `gorm:"not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod      string          `gorm:"type:varchar(50);not null"`
	IsEcommerceSale    bool            `gorm:"not null;default:false"`
	EcommercePlatform  string          `gorm:"type:varchar(50)"`

	Items []SaleItem `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one sold line with its price and the cost at sale time
type SaleItem struct {
	shared.BaseEntity
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cost      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// Subtotal returns quantity × unit price
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// SaleLine carries the fields of a new sale item
type SaleLine struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
	Cost      decimal.Decimal
}

// NewSale creates a sale without items
func NewSale(tenantID uuid.UUID, clientID, localID *uuid.UUID, paymentMethod string, userID *uuid.UUID) (*Sale, error) {
	if paymentMethod == "" {
		return nil, shared.Validationf("Payment method is required")
	}
	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		ClientID:            clientID,
		LocalID:             localID,
		Date:                time.Now(),
		TotalAmount:         decimal.Zero,
		PaymentMethod:       paymentMethod,
	}, nil
}

// AddItem appends a line and refreshes the total
func (s *Sale) AddItem(line SaleLine) (*SaleItem, error) {
	if line.ProductID == uuid.Nil {
		return nil, shared.Validationf("Sale item product is required")
	}
	if line.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if line.UnitPrice.IsNegative() || line.Cost.IsNegative() {
		return nil, shared.Validationf("Sale prices cannot be negative")
	}
	s.Items = append(s.Items, SaleItem{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     s.ID,
		ProductID:  line.ProductID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		Cost:       line.Cost,
	})
	s.RecalculateTotal()
	return &s.Items[len(s.Items)-1], nil
}

// RecalculateTotal sets TotalAmount to Σ quantity × unit price
func (s *Sale) RecalculateTotal() {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].Subtotal())
	}
	s.TotalAmount = shared.RoundMoney(total)
}

// SoldQuantities returns the sold units per product
func (s *Sale) SoldQuantities() map[uuid.UUID]int64 {
	sold := make(map[uuid.UUID]int64, len(s.Items))
	for _, item := range s.Items {
		sold[item.ProductID] += item.Quantity
	}
	return sold
}
