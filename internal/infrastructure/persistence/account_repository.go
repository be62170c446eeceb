package persistence

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByIDForTenant finds an account
func (r *GormAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	var account finance.Account
	if err := scoped(ctx, r.db, tenantID).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &account, nil
}

// FindByType lists the accounts of a type in creation order
func (r *GormAccountRepository) FindByType(ctx context.Context, tenantID uuid.UUID, accountType finance.AccountType) ([]finance.Account, error) {
	var accounts []finance.Account
	err := scoped(ctx, r.db, tenantID).
		Where("account_type = ?", accountType).
		Order("created_at ASC").
		Order("code ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindAllForTenant lists accounts
func (r *GormAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Account, error) {
	var accounts []finance.Account
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&finance.Account{}), filter, AccountSortFields, "name")
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// ExistsByCode checks whether the code is taken within the tenant
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := scoped(ctx, r.db, tenantID).Model(&finance.Account{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

var _ finance.AccountRepository = (*GormAccountRepository)(nil)

// GormCashRegisterRepository implements CashRegisterRepository using GORM
type GormCashRegisterRepository struct {
	gormReferenceRepository[finance.CashRegister]
}

// NewGormCashRegisterRepository creates a new GormCashRegisterRepository
func NewGormCashRegisterRepository(db *gorm.DB) *GormCashRegisterRepository {
	return &GormCashRegisterRepository{newReferenceRepository[finance.CashRegister](db)}
}

// GormPaymentMethodTypeRepository implements PaymentMethodTypeRepository using GORM
type GormPaymentMethodTypeRepository struct {
	gormReferenceRepository[finance.PaymentMethodType]
}

// NewGormPaymentMethodTypeRepository creates a new GormPaymentMethodTypeRepository
func NewGormPaymentMethodTypeRepository(db *gorm.DB) *GormPaymentMethodTypeRepository {
	return &GormPaymentMethodTypeRepository{newReferenceRepository[finance.PaymentMethodType](db)}
}

// GormBankRepository implements BankRepository using GORM
type GormBankRepository struct {
	gormReferenceRepository[finance.Bank]
}

// NewGormBankRepository creates a new GormBankRepository
func NewGormBankRepository(db *gorm.DB) *GormBankRepository {
	return &GormBankRepository{newReferenceRepository[finance.Bank](db)}
}

// GormFinancialCostRuleRepository implements FinancialCostRuleRepository using GORM
type GormFinancialCostRuleRepository struct {
	gormReferenceRepository[finance.FinancialCostRule]
}

// NewGormFinancialCostRuleRepository creates a new GormFinancialCostRuleRepository
func NewGormFinancialCostRuleRepository(db *gorm.DB) *GormFinancialCostRuleRepository {
	return &GormFinancialCostRuleRepository{newReferenceRepository[finance.FinancialCostRule](db)}
}

// FindApplicable returns the bank-specific rule for the method when bankID
// is given and one exists, else the method's bank-agnostic rule
func (r *GormFinancialCostRuleRepository) FindApplicable(ctx context.Context, tenantID, paymentMethodID uuid.UUID, bankID *uuid.UUID) (*finance.FinancialCostRule, error) {
	var rule finance.FinancialCostRule
	if bankID != nil {
		err := scoped(ctx, r.db, tenantID).
			Where("payment_method_id = ? AND bank_id = ?", paymentMethodID, *bankID).
			Order("created_at ASC").
			First(&rule).Error
		if err == nil {
			return &rule, nil
		}
		if err = translateNotFound(err); !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	err := scoped(ctx, r.db, tenantID).
		Where("payment_method_id = ? AND bank_id IS NULL", paymentMethodID).
		Order("created_at ASC").
		First(&rule).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &rule, nil
}

var (
	_ finance.CashRegisterRepository      = (*GormCashRegisterRepository)(nil)
	_ finance.PaymentMethodTypeRepository = (*GormPaymentMethodTypeRepository)(nil)
	_ finance.BankRepository              = (*GormBankRepository)(nil)
	_ finance.FinancialCostRuleRepository = (*GormFinancialCostRuleRepository)(nil)
)
