// Package unitofwork defines the transactional boundary shared by every
// application service. One Execute call is one database transaction; all
// repositories handed to fn share it.
package unitofwork

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/identity"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to every repository within a transaction.
// All repositories returned share the same underlying database transaction.
type Repositories interface {
	TenantRepo() identity.TenantRepository

	CategoryRepo() catalog.CategoryRepository
	SizeRepo() catalog.SizeRepository
	ColorRepo() catalog.ColorRepository
	ProcessRepo() catalog.ProcessRepository
	RawMaterialRepo() catalog.RawMaterialRepository
	DesignRepo() catalog.DesignRepository
	ProductRepo() catalog.ProductRepository

	LocalRepo() inventory.LocalRepository
	InventoryRepo() inventory.InventoryItemRepository
	MaterialLotRepo() inventory.MaterialLotRepository
	StockAdjustmentRepo() inventory.StockAdjustmentRepository
	InternalDeliveryRepo() inventory.InternalDeliveryNoteRepository

	ClientRepo() partner.ClientRepository
	SupplierRepo() partner.SupplierRepository

	QuotationRepo() trade.QuotationRepository
	SaleRepo() trade.SaleRepository
	DeliveryNoteRepo() trade.DeliveryNoteRepository
	PurchaseOrderRepo() trade.PurchaseOrderRepository

	ProductionOrderRepo() production.ProductionOrderRepository
	OrderNoteRepo() production.OrderNoteRepository
	ProcessLogRepo() production.ProcessLogRepository

	AccountRepo() finance.AccountRepository
	CashRegisterRepo() finance.CashRegisterRepository
	TransactionRepo() finance.TransactionRepository
	PaymentMethodRepo() finance.PaymentMethodTypeRepository
	BankRepo() finance.BankRepository
	CostRuleRepo() finance.FinancialCostRuleRepository
	SupplierPaymentRepo() finance.SupplierPaymentRepository
}
