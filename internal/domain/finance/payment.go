package finance

import (
	"strings"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethodType is a configured way of paying (Efectivo, Tarjeta...)
type PaymentMethodType struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (PaymentMethodType) TableName() string {
	return "payment_method_types"
}

// NewPaymentMethodType creates a payment method
func NewPaymentMethodType(tenantID uuid.UUID, name string) (*PaymentMethodType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Payment method name cannot be empty")
	}
	return &PaymentMethodType{TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID), Name: name}, nil
}

// Bank is a financial institution used by cost rules
type Bank struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Bank) TableName() string {
	return "banks"
}

// NewBank creates a bank
func NewBank(tenantID uuid.UUID, name string) (*Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Bank name cannot be empty")
	}
	return &Bank{TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID), Name: name}, nil
}

// FinancialCostRule is the fee percentage charged for a payment method,
// optionally specific to one bank. Percentage 3.50 means 3.5%.
type FinancialCostRule struct {
	shared.TenantAggregateRoot
	Name            string          `gorm:"type:varchar(100);not null"`
	PaymentMethodID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BankID          *uuid.UUID      `gorm:"type:uuid;index"`
	Percentage      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (FinancialCostRule) TableName() string {
	return "financial_cost_rules"
}

// NewFinancialCostRule creates a cost rule
func NewFinancialCostRule(tenantID uuid.UUID, name string, paymentMethodID uuid.UUID, bankID *uuid.UUID, percentage decimal.Decimal) (*FinancialCostRule, error) {
	if paymentMethodID == uuid.Nil {
		return nil, shared.Validationf("Cost rule payment method is required")
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.Validationf("Cost rule percentage must be between 0 and 100")
	}
	return &FinancialCostRule{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		PaymentMethodID:     paymentMethodID,
		BankID:              bankID,
		Percentage:          percentage,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// SplitFinancialCost splits a gross payment into the net amount credited
// and the financial cost retained by the payment provider
func SplitFinancialCost(amount, percentage decimal.Decimal) (net, cost decimal.Decimal) {
	if !percentage.IsPositive() {
		return amount, decimal.Zero
	}
	cost = shared.RoundMoney(amount.Mul(percentage).Div(hundred))
	return amount.Sub(cost), cost
}

// SupplierPayment is a payment made against a purchase order
type SupplierPayment struct {
	shared.TenantAggregateRoot
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date            time.Time       `gorm:"not null"`
	TransactionID   uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (SupplierPayment) TableName() string {
	return "supplier_payments"
}
