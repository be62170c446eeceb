package finance

import (
	"fmt"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a signed ledger movement against an account. Positive
// amounts are inflows. RelatedSaleID and RelatedPurchaseID link it to the
// business event that caused it.
type Transaction struct {
	shared.TenantAggregateRoot
	Date              time.Time       `gorm:"not null;index"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RelatedSaleID     *uuid.UUID      `gorm:"type:uuid;index"`
	RelatedPurchaseID *uuid.UUID      `gorm:"type:uuid;index"`
	CashRegisterID    *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a ledger movement
func NewTransaction(tenantID, accountID uuid.UUID, amount decimal.Decimal, description string) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.Validationf("Transaction account is required")
	}
	if amount.IsZero() {
		return nil, shared.Validationf("Transaction amount cannot be zero")
	}
	return &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Date:                time.Now(),
		Description:         description,
		Amount:              shared.RoundMoney(amount),
		AccountID:           accountID,
	}, nil
}

// ForSale links the transaction to a sale
func (t *Transaction) ForSale(saleID uuid.UUID) *Transaction {
	t.RelatedSaleID = &saleID
	return t
}

// ForPurchase links the transaction to a purchase order
func (t *Transaction) ForPurchase(purchaseID uuid.UUID) *Transaction {
	t.RelatedPurchaseID = &purchaseID
	return t
}

// SalePaymentDescription is the description of an immediate sale posting
func SalePaymentDescription(saleID uuid.UUID) string {
	return fmt.Sprintf("Pago de venta #%s", saleID)
}

// SupplierPaymentDescription is the description of a supplier payment
func SupplierPaymentDescription(orderNumber int64) string {
	return fmt.Sprintf("Pago a proveedor por OC #%d", orderNumber)
}
