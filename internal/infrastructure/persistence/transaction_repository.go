package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// Balances are always aggregated from the rows, never stored.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends a ledger movement
func (r *GormTransactionRepository) Create(ctx context.Context, tx *finance.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindBySale lists the movements linked to a sale, oldest first
func (r *GormTransactionRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]finance.Transaction, error) {
	var txs []finance.Transaction
	err := scoped(ctx, r.db, tenantID).
		Where("related_sale_id = ?", saleID).
		Order("date ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func sumAmount(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := query.Select("SUM(transactions.amount)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumPositiveForSale sums the inflows linked to a sale
func (r *GormTransactionRepository) SumPositiveForSale(ctx context.Context, tenantID, saleID uuid.UUID) (decimal.Decimal, error) {
	return sumAmount(scoped(ctx, r.db, tenantID).
		Model(&finance.Transaction{}).
		Where("related_sale_id = ? AND amount > 0", saleID))
}

// SumForClient sums the movements linked to the client's sales
func (r *GormTransactionRepository) SumForClient(ctx context.Context, tenantID, clientID uuid.UUID) (decimal.Decimal, error) {
	return sumAmount(scoped(ctx, r.db, tenantID).
		Model(&finance.Transaction{}).
		Joins("JOIN sales ON sales.id = transactions.related_sale_id").
		Where("sales.client_id = ?", clientID))
}

// SumForSupplier sums the movements linked to the supplier's purchase orders
func (r *GormTransactionRepository) SumForSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (decimal.Decimal, error) {
	return sumAmount(scoped(ctx, r.db, tenantID).
		Model(&finance.Transaction{}).
		Joins("JOIN purchase_orders ON purchase_orders.id = transactions.related_purchase_id").
		Where("purchase_orders.supplier_id = ?", supplierID))
}

// SumForAccount sums the movements of an account
func (r *GormTransactionRepository) SumForAccount(ctx context.Context, tenantID, accountID uuid.UUID) (decimal.Decimal, error) {
	return sumAmount(scoped(ctx, r.db, tenantID).
		Model(&finance.Transaction{}).
		Where("account_id = ?", accountID))
}

var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)

// GormSupplierPaymentRepository implements SupplierPaymentRepository using GORM
type GormSupplierPaymentRepository struct {
	db *gorm.DB
}

// NewGormSupplierPaymentRepository creates a new GormSupplierPaymentRepository
func NewGormSupplierPaymentRepository(db *gorm.DB) *GormSupplierPaymentRepository {
	return &GormSupplierPaymentRepository{db: db}
}

// Create records a supplier payment
func (r *GormSupplierPaymentRepository) Create(ctx context.Context, payment *finance.SupplierPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByPurchaseOrder lists the payments of an order, oldest first
func (r *GormSupplierPaymentRepository) FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID) ([]finance.SupplierPayment, error) {
	var payments []finance.SupplierPayment
	err := scoped(ctx, r.db, tenantID).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

var _ finance.SupplierPaymentRepository = (*GormSupplierPaymentRepository)(nil)
