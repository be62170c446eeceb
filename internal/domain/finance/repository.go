package finance

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository persists ledger accounts
type AccountRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	// FindByType lists accounts of a type in creation order
	FindByType(ctx context.Context, tenantID uuid.UUID, accountType AccountType) ([]Account, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Account, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, account *Account) error
}

// CashRegisterRepository persists cash registers
type CashRegisterRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CashRegister, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CashRegister, error)
	Save(ctx context.Context, register *CashRegister) error
}

// TransactionRepository persists ledger movements and derives balances
// from them on every call
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]Transaction, error)
	// SumPositiveForSale returns Σ amount of the positive movements linked
	// to the sale
	SumPositiveForSale(ctx context.Context, tenantID, saleID uuid.UUID) (decimal.Decimal, error)
	// SumForClient returns Σ amount of movements linked to the client's sales
	SumForClient(ctx context.Context, tenantID, clientID uuid.UUID) (decimal.Decimal, error)
	// SumForSupplier returns Σ amount of movements linked to the supplier's
	// purchase orders
	SumForSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (decimal.Decimal, error)
	SumForAccount(ctx context.Context, tenantID, accountID uuid.UUID) (decimal.Decimal, error)
}

// PaymentMethodTypeRepository persists payment methods
type PaymentMethodTypeRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentMethodType, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PaymentMethodType, error)
	Save(ctx context.Context, method *PaymentMethodType) error
}

// BankRepository persists banks
type BankRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bank, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Bank, error)
	Save(ctx context.Context, bank *Bank) error
}

// FinancialCostRuleRepository persists cost rules
type FinancialCostRuleRepository interface {
	// FindApplicable returns the bank-specific rule for the method when bankID
	// is given and one exists, else the method's bank-agnostic rule, else
	// shared.ErrNotFound
	FindApplicable(ctx context.Context, tenantID, paymentMethodID uuid.UUID, bankID *uuid.UUID) (*FinancialCostRule, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FinancialCostRule, error)
	Save(ctx context.Context, rule *FinancialCostRule) error
}

// SupplierPaymentRepository persists purchase order payments
type SupplierPaymentRepository interface {
	Create(ctx context.Context, payment *SupplierPayment) error
	FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID) ([]SupplierPayment, error)
}
