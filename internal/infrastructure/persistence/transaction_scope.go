package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/identity"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos unitofwork.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) TenantRepo() identity.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

func (r *gormTransactionalRepositories) CategoryRepo() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormTransactionalRepositories) SizeRepo() catalog.SizeRepository {
	return NewGormSizeRepository(r.tx)
}

func (r *gormTransactionalRepositories) ColorRepo() catalog.ColorRepository {
	return NewGormColorRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProcessRepo() catalog.ProcessRepository {
	return NewGormProcessRepository(r.tx)
}

func (r *gormTransactionalRepositories) RawMaterialRepo() catalog.RawMaterialRepository {
	return NewGormRawMaterialRepository(r.tx)
}

func (r *gormTransactionalRepositories) DesignRepo() catalog.DesignRepository {
	return NewGormDesignRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) LocalRepo() inventory.LocalRepository {
	return NewGormLocalRepository(r.tx)
}

func (r *gormTransactionalRepositories) InventoryRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) MaterialLotRepo() inventory.MaterialLotRepository {
	return NewGormMaterialLotRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockAdjustmentRepo() inventory.StockAdjustmentRepository {
	return NewGormStockAdjustmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) InternalDeliveryRepo() inventory.InternalDeliveryNoteRepository {
	return NewGormInternalDeliveryNoteRepository(r.tx)
}

func (r *gormTransactionalRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormTransactionalRepositories) QuotationRepo() trade.QuotationRepository {
	return NewGormQuotationRepository(r.tx)
}

func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) DeliveryNoteRepo() trade.DeliveryNoteRepository {
	return NewGormDeliveryNoteRepository(r.tx)
}

func (r *gormTransactionalRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductionOrderRepo() production.ProductionOrderRepository {
	return NewGormProductionOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderNoteRepo() production.OrderNoteRepository {
	return NewGormOrderNoteRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProcessLogRepo() production.ProcessLogRepository {
	return NewGormProcessLogRepository(r.tx)
}

func (r *gormTransactionalRepositories) AccountRepo() finance.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) CashRegisterRepo() finance.CashRegisterRepository {
	return NewGormCashRegisterRepository(r.tx)
}

func (r *gormTransactionalRepositories) TransactionRepo() finance.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentMethodRepo() finance.PaymentMethodTypeRepository {
	return NewGormPaymentMethodTypeRepository(r.tx)
}

func (r *gormTransactionalRepositories) BankRepo() finance.BankRepository {
	return NewGormBankRepository(r.tx)
}

func (r *gormTransactionalRepositories) CostRuleRepo() finance.FinancialCostRuleRepository {
	return NewGormFinancialCostRuleRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierPaymentRepo() finance.SupplierPaymentRepository {
	return NewGormSupplierPaymentRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ unitofwork.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements Repositories
var _ unitofwork.Repositories = (*gormTransactionalRepositories)(nil)
