package finance

import (
	"context"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Counterparty kinds of a balance
const (
	BalanceKindClient   = "client"
	BalanceKindSupplier = "supplier"
)

// PaymentService registers incoming and outgoing payments on the account
// ledger
type PaymentService struct {
	txScope         unitofwork.TransactionScope
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(txScope unitofwork.TransactionScope) *PaymentService {
	return &PaymentService{txScope: txScope, now: time.Now}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *PaymentService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// RegisterPayment books a client payment against a sale. The amount cannot
// exceed what is still pending. When the payment method has a financial
// cost rule the net amount is credited to the chosen account and the cost
// is booked on an expense account, both linked to the sale.
func (s *PaymentService) RegisterPayment(ctx context.Context, tenantID uuid.UUID, req RegisterPaymentRequest) (resp *PaymentResultResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PaymentService", "RegisterPayment",
		attribute.String("sale_id", req.SaleID.String()),
		attribute.String("amount", req.Amount.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if !req.Amount.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}
	amount := shared.RoundMoney(req.Amount)

	var result PaymentResultResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		sale, err := repos.SaleRepo().FindForUpdate(ctx, tenantID, req.SaleID)
		if err != nil {
			return err
		}
		if req.ClientID != nil && (sale.ClientID == nil || *sale.ClientID != *req.ClientID) {
			return shared.Validationf("Sale %s does not belong to client %s", sale.ID, *req.ClientID)
		}
		if _, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, req.AccountID); err != nil {
			return err
		}
		if req.CashRegisterID != nil {
			if _, err := repos.CashRegisterRepo().FindByIDForTenant(ctx, tenantID, *req.CashRegisterID); err != nil {
				return err
			}
		}

		paid, err := salePaidAmount(ctx, repos, tenantID, sale.ID)
		if err != nil {
			return err
		}
		pending := sale.TotalAmount.Sub(paid)
		if amount.GreaterThan(pending) {
			return shared.NewDomainErrorf(shared.CodeAmountExceedsBalance,
				"Amount %s exceeds the pending balance of %s", shared.MoneyString(amount), shared.MoneyString(pending)).
				WithDetail("pending", shared.MoneyString(pending)).
				WithDetail("amount", shared.MoneyString(amount))
		}

		percentage := decimal.Zero
		if req.PaymentMethodID != nil {
			if percentage, err = financialCost(ctx, repos, tenantID, *req.PaymentMethodID, req.BankID); err != nil {
				return err
			}
		}
		net, cost := finance.SplitFinancialCost(amount, percentage)

		credit, err := finance.NewTransaction(tenantID, req.AccountID, net, finance.SalePaymentDescription(sale.ID))
		if err != nil {
			return err
		}
		credit.ForSale(sale.ID)
		credit.CashRegisterID = req.CashRegisterID
		if err := repos.TransactionRepo().Create(ctx, credit); err != nil {
			return err
		}

		if cost.IsPositive() {
			expense, err := expenseAccount(ctx, repos, tenantID)
			if err != nil {
				return err
			}
			debit, err := finance.NewTransaction(tenantID, expense.ID, cost, financialCostDescription(sale.ID))
			if err != nil {
				return err
			}
			debit.ForSale(sale.ID)
			if err := repos.TransactionRepo().Create(ctx, debit); err != nil {
				return err
			}
			entry := ToTransactionResponse(debit)
			result.CostEntry = &entry
		}

		result.SaleID = sale.ID
		result.Net = net
		result.Cost = cost
		result.Remaining = pending.Sub(amount)
		result.PaymentStatus = string(trade.PaymentStatusFor(sale.TotalAmount, paid.Add(amount)))
		result.Transaction = ToTransactionResponse(credit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordPayment(ctx, tenantID, paymentMethodLabel(req.PaymentMethodID), "in", amount)
	logger.L(ctx).Info("sale payment registered",
		zap.String("sale_id", req.SaleID.String()),
		zap.String("net", shared.MoneyString(result.Net)),
		zap.String("cost", shared.MoneyString(result.Cost)),
		zap.String("remaining", shared.MoneyString(result.Remaining)))
	return &result, nil
}

// SalePayments summarises what has been paid on a sale
func (s *PaymentService) SalePayments(ctx context.Context, tenantID, saleID uuid.UUID) (*SalePaymentSummaryResponse, error) {
	var resp SalePaymentSummaryResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		paid, err := salePaidAmount(ctx, repos, tenantID, sale.ID)
		if err != nil {
			return err
		}
		rows, err := repos.TransactionRepo().FindBySale(ctx, tenantID, sale.ID)
		if err != nil {
			return err
		}
		resp = SalePaymentSummaryResponse{
			SaleID:        sale.ID,
			Total:         sale.TotalAmount,
			Paid:          paid,
			Pending:       sale.TotalAmount.Sub(paid),
			PaymentStatus: string(trade.PaymentStatusFor(sale.TotalAmount, paid)),
			Transactions:  make([]TransactionResponse, 0, len(rows)),
		}
		for i := range rows {
			resp.Transactions = append(resp.Transactions, ToTransactionResponse(&rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterSupplierPayment pays a purchase order. The paid amount grows in
// a single statement so concurrent payments never lose an update, and the
// order status follows the new paid amount.
func (s *PaymentService) RegisterSupplierPayment(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, req RegisterSupplierPaymentRequest) (resp *SupplierPaymentResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "PaymentService", "RegisterSupplierPayment",
		attribute.String("purchase_order_id", purchaseOrderID.String()),
		attribute.String("amount", req.Amount.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if !req.Amount.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}
	amount := shared.RoundMoney(req.Amount)

	var result SupplierPaymentResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		orders := repos.PurchaseOrderRepo()
		order, err := orders.FindForUpdate(ctx, tenantID, purchaseOrderID)
		if err != nil {
			return err
		}
		if err := order.EnsurePayable(); err != nil {
			return err
		}
		if _, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, req.AccountID); err != nil {
			return err
		}
		if req.PaymentMethodID != nil {
			if _, err := repos.PaymentMethodRepo().FindByIDForTenant(ctx, tenantID, *req.PaymentMethodID); err != nil {
				return err
			}
		}

		paid, err := orders.IncrementPaid(ctx, tenantID, order.ID, amount)
		if err != nil {
			return err
		}
		order.PaidAmount = shared.RoundMoney(paid)
		if order.ReceivedAt == nil {
			order.Status = trade.PurchaseStatusFor(order.TotalAmount, order.PaidAmount)
			if err := orders.UpdateStatus(ctx, order); err != nil {
				return err
			}
		}

		tx, err := finance.NewTransaction(tenantID, req.AccountID, amount, finance.SupplierPaymentDescription(order.Number))
		if err != nil {
			return err
		}
		tx.ForPurchase(order.ID)
		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}

		payment := &finance.SupplierPayment{
			TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, req.UserID),
			PurchaseOrderID:     order.ID,
			SupplierID:          order.SupplierID,
			AccountID:           req.AccountID,
			PaymentMethodID:     req.PaymentMethodID,
			Amount:              amount,
			Date:                s.now(),
			TransactionID:       tx.ID,
		}
		if err := repos.SupplierPaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		result = toSupplierPaymentResponse(payment, order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.businessMetrics.RecordPayment(ctx, tenantID, paymentMethodLabel(req.PaymentMethodID), "out", amount)
	logger.L(ctx).Info("supplier payment registered",
		zap.String("purchase_order_id", purchaseOrderID.String()),
		zap.String("amount", shared.MoneyString(amount)),
		zap.String("status", result.Status))
	return &result, nil
}

// SupplierPayments lists the payments of a purchase order
func (s *PaymentService) SupplierPayments(ctx context.Context, tenantID, purchaseOrderID uuid.UUID) ([]SupplierPaymentResponse, error) {
	var items []SupplierPaymentResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		order, err := repos.PurchaseOrderRepo().FindByIDForTenant(ctx, tenantID, purchaseOrderID)
		if err != nil {
			return err
		}
		rows, err := repos.SupplierPaymentRepo().FindByPurchaseOrder(ctx, tenantID, order.ID)
		if err != nil {
			return err
		}
		items = make([]SupplierPaymentResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toSupplierPaymentResponse(&rows[i], order))
		}
		return nil
	})
	return items, err
}

// BalanceForClient sums the movements linked to the client's sales. It is
// computed on every call.
func (s *PaymentService) BalanceForClient(ctx context.Context, tenantID, clientID uuid.UUID) (*BalanceResponse, error) {
	return s.balance(ctx, tenantID, clientID, BalanceKindClient, func(repos unitofwork.Repositories) (decimal.Decimal, error) {
		if _, err := repos.ClientRepo().FindByIDForTenant(ctx, tenantID, clientID); err != nil {
			return decimal.Zero, err
		}
		return repos.TransactionRepo().SumForClient(ctx, tenantID, clientID)
	})
}

// BalanceForSupplier sums the movements linked to the supplier's purchase
// orders. It is computed on every call.
func (s *PaymentService) BalanceForSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (*BalanceResponse, error) {
	return s.balance(ctx, tenantID, supplierID, BalanceKindSupplier, func(repos unitofwork.Repositories) (decimal.Decimal, error) {
		if _, err := repos.SupplierRepo().FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
			return decimal.Zero, err
		}
		return repos.TransactionRepo().SumForSupplier(ctx, tenantID, supplierID)
	})
}

func (s *PaymentService) balance(ctx context.Context, tenantID, counterpartyID uuid.UUID, kind string, sum func(unitofwork.Repositories) (decimal.Decimal, error)) (*BalanceResponse, error) {
	var total decimal.Decimal
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		var err error
		total, err = sum(repos)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{CounterpartyID: counterpartyID, Kind: kind, Balance: shared.RoundMoney(total)}, nil
}

func toSupplierPaymentResponse(p *finance.SupplierPayment, order *trade.PurchaseOrder) SupplierPaymentResponse {
	return SupplierPaymentResponse{
		ID:              p.ID,
		PurchaseOrderID: p.PurchaseOrderID,
		SupplierID:      p.SupplierID,
		AccountID:       p.AccountID,
		PaymentMethodID: p.PaymentMethodID,
		Amount:          p.Amount,
		Date:            p.Date,
		TransactionID:   p.TransactionID,
		PaidAmount:      order.PaidAmount,
		Status:          string(order.Status),
	}
}

func paymentMethodLabel(id *uuid.UUID) string {
	if id == nil {
		return "unspecified"
	}
	return id.String()
}
