// Package finance is the double-entry-lite ledger: accounts, cash registers,
// signed transactions, supplier payments and the rules that price payment
// methods.
package finance

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountType classifies accounts
type AccountType string

const (
	AccountAsset     AccountType = "Activo"
	AccountLiability AccountType = "Pasivo"
	AccountEquity    AccountType = "Patrimonio Neto"
	AccountIncome    AccountType = "Ingreso"
	AccountExpense   AccountType = "Egreso"
)

// IsValid checks if the type is known
func (t AccountType) IsValid() bool {
	switch t {
	case AccountAsset, AccountLiability, AccountEquity, AccountIncome, AccountExpense:
		return true
	}
	return false
}

// cashAccountHint marks the preferred asset account for immediate payments
const cashAccountHint = "Caja"

// Account is a ledger account. Code is unique within the tenant.
type Account struct {
	shared.BaseAggregateRoot
	TenantID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_tenant_code,priority:1"`
	Name        string      `gorm:"type:varchar(100);not null"`
	AccountType AccountType `gorm:"type:varchar(20);not null;index"`
	Code        string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_tenant_code,priority:2"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates an account
func NewAccount(tenantID uuid.UUID, name string, accountType AccountType, code string) (*Account, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, shared.Validationf("Account name and code are required")
	}
	if !accountType.IsValid() {
		return nil, shared.Validationf("Unknown account type %q", accountType)
	}
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Name:              name,
		AccountType:       accountType,
		Code:              code,
	}, nil
}

// PickCashAccount chooses the asset account that receives immediate
// payments: the first whose name mentions "Caja", else the first one.
// It returns nil when there are no candidates.
func PickCashAccount(assets []Account) *Account {
	for i := range assets {
		if strings.Contains(assets[i].Name, cashAccountHint) {
			return &assets[i]
		}
	}
	if len(assets) > 0 {
		return &assets[0]
	}
	return nil
}

// CashRegister is a physical till, optionally tied to a store
type CashRegister struct {
	shared.TenantAggregateRoot
	Name    string     `gorm:"type:varchar(100);not null"`
	LocalID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CashRegister) TableName() string {
	return "cash_registers"
}

// NewCashRegister creates a cash register
func NewCashRegister(tenantID uuid.UUID, name string, localID *uuid.UUID) (*CashRegister, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Cash register name cannot be empty")
	}
	return &CashRegister{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		LocalID:             localID,
	}, nil
}
