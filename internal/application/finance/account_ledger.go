// Package finance books money movements: sale payments, financial costs of
// payment methods and supplier payments, and the balances derived from them.
package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostSalePayment books the total of a sale settled at creation. The
// inflow goes to the first asset account named like a cash box, else to the
// first asset account. When the tenant has no asset account nothing is
// booked and the returned transaction is nil.
func PostSalePayment(ctx context.Context, repos unitofwork.Repositories, sale *trade.Sale) (*finance.Transaction, error) {
	if !trade.IsImmediatePayment(sale.PaymentMethod) || !sale.TotalAmount.IsPositive() {
		return nil, nil
	}
	assets, err := repos.AccountRepo().FindByType(ctx, sale.TenantID, finance.AccountAsset)
	if err != nil {
		return nil, err
	}
	account := finance.PickCashAccount(assets)
	if account == nil {
		logger.L(ctx).Warn("sale payment not booked: tenant has no asset account",
			zap.String("sale_id", sale.ID.String()),
			zap.String("payment_method", sale.PaymentMethod))
		return nil, nil
	}

	tx, err := finance.NewTransaction(sale.TenantID, account.ID, sale.TotalAmount, finance.SalePaymentDescription(sale.ID))
	if err != nil {
		return nil, err
	}
	tx.ForSale(sale.ID)
	if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// salePaidAmount returns Σ of the inflows linked to a sale
func salePaidAmount(ctx context.Context, repos unitofwork.Repositories, tenantID, saleID uuid.UUID) (decimal.Decimal, error) {
	paid, err := repos.TransactionRepo().SumPositiveForSale(ctx, tenantID, saleID)
	if err != nil {
		return decimal.Zero, err
	}
	return shared.RoundMoney(paid), nil
}

// financialCost finds the cost rule of a payment method, preferring the
// bank-specific one, and returns its percentage. No rule means zero.
func financialCost(ctx context.Context, repos unitofwork.Repositories, tenantID, paymentMethodID uuid.UUID, bankID *uuid.UUID) (decimal.Decimal, error) {
	if _, err := repos.PaymentMethodRepo().FindByIDForTenant(ctx, tenantID, paymentMethodID); err != nil {
		return decimal.Zero, err
	}
	if bankID != nil {
		if _, err := repos.BankRepo().FindByIDForTenant(ctx, tenantID, *bankID); err != nil {
			return decimal.Zero, err
		}
	}
	rule, err := repos.CostRuleRepo().FindApplicable(ctx, tenantID, paymentMethodID, bankID)
	if errors.Is(err, shared.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return rule.Percentage, nil
}

func expenseAccount(ctx context.Context, repos unitofwork.Repositories, tenantID uuid.UUID) (*finance.Account, error) {
	expenses, err := repos.AccountRepo().FindByType(ctx, tenantID, finance.AccountExpense)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, shared.NotFoundf("No %s account to book the financial cost", finance.AccountExpense)
	}
	return &expenses[0], nil
}

func financialCostDescription(saleID uuid.UUID) string {
	return fmt.Sprintf("Costo financiero de venta #%s", saleID)
}
