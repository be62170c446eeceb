package finance

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Account DTOs ====================

// CreateAccountRequest creates a ledger account
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	AccountType string `json:"account_type" binding:"required,oneof=Activo Pasivo 'Patrimonio Neto' Ingreso Egreso"`
	Code        string `json:"code" binding:"required,min=1,max=20"`
}

// AccountResponse represents an account
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AccountType string    `json:"account_type"`
	Code        string    `json:"code"`
}

func toAccountResponse(a *finance.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Name: a.Name, AccountType: string(a.AccountType), Code: a.Code}
}

// AccountBalanceResponse is the signed sum of an account's movements
type AccountBalanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// CreateCashRegisterRequest creates a cash register
type CreateCashRegisterRequest struct {
	Name    string     `json:"name" binding:"required,min=1,max=100"`
	LocalID *uuid.UUID `json:"local_id"`
}

// NamedResponse is the response of name-only reference data
type NamedResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CashRegisterResponse represents a cash register
type CashRegisterResponse struct {
	ID      uuid.UUID  `json:"id"`
	Name    string     `json:"name"`
	LocalID *uuid.UUID `json:"local_id,omitempty"`
}

// CreateNamedRequest creates a bank or a payment method
type CreateNamedRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateCostRuleRequest creates a financial cost rule. A nil BankID makes
// the rule apply to every bank of the payment method.
type CreateCostRuleRequest struct {
	Name            string          `json:"name" binding:"max=100"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	BankID          *uuid.UUID      `json:"bank_id"`
	Percentage      decimal.Decimal `json:"percentage"`
}

// CostRuleResponse represents a financial cost rule
type CostRuleResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	BankID          *uuid.UUID      `json:"bank_id,omitempty"`
	Percentage      decimal.Decimal `json:"percentage"`
}

func toCostRuleResponse(r *finance.FinancialCostRule) CostRuleResponse {
	return CostRuleResponse{
		ID:              r.ID,
		Name:            r.Name,
		PaymentMethodID: r.PaymentMethodID,
		BankID:          r.BankID,
		Percentage:      r.Percentage,
	}
}

// ==================== Transaction DTOs ====================

// TransactionResponse represents a ledger movement
type TransactionResponse struct {
	ID                uuid.UUID       `json:"id"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	AccountID         uuid.UUID       `json:"account_id"`
	RelatedSaleID     *uuid.UUID      `json:"related_sale_id,omitempty"`
	RelatedPurchaseID *uuid.UUID      `json:"related_purchase_id,omitempty"`
	CashRegisterID    *uuid.UUID      `json:"cash_register_id,omitempty"`
}

// ToTransactionResponse converts a transaction to its response
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		Date:              t.Date,
		Description:       t.Description,
		Amount:            t.Amount,
		AccountID:         t.AccountID,
		RelatedSaleID:     t.RelatedSaleID,
		RelatedPurchaseID: t.RelatedPurchaseID,
		CashRegisterID:    t.CashRegisterID,
	}
}

// ==================== Payment DTOs ====================

// RegisterPaymentRequest registers a client payment against a sale
type RegisterPaymentRequest struct {
	SaleID          uuid.UUID       `json:"sale_id" binding:"required"`
	ClientID        *uuid.UUID      `json:"client_id"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	AccountID       uuid.UUID       `json:"account_id" binding:"required"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id"`
	BankID          *uuid.UUID      `json:"bank_id"`
	CashRegisterID  *uuid.UUID      `json:"cash_register_id"`
}

// PaymentResultResponse reports how a payment was booked
type PaymentResultResponse struct {
	SaleID        uuid.UUID            `json:"sale_id"`
	Net           decimal.Decimal      `json:"net"`
	Cost          decimal.Decimal      `json:"cost"`
	Remaining     decimal.Decimal      `json:"remaining"`
	PaymentStatus string               `json:"payment_status"`
	Transaction   TransactionResponse  `json:"transaction"`
	CostEntry     *TransactionResponse `json:"cost_transaction,omitempty"`
}

// SalePaymentSummaryResponse reports what has been paid on a sale
type SalePaymentSummaryResponse struct {
	SaleID        uuid.UUID             `json:"sale_id"`
	Total         decimal.Decimal       `json:"total"`
	Paid          decimal.Decimal       `json:"paid"`
	Pending       decimal.Decimal       `json:"pending"`
	PaymentStatus string                `json:"payment_status"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// RegisterSupplierPaymentRequest pays a purchase order
type RegisterSupplierPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	AccountID       uuid.UUID       `json:"account_id" binding:"required"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id"`
	UserID          *uuid.UUID      `json:"-"`
}

// SupplierPaymentResponse represents a payment made to a supplier
type SupplierPaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	AccountID       uuid.UUID       `json:"account_id"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Status          string          `json:"status"`
}

// BalanceResponse is the signed sum of the movements linked to a client or
// a supplier
type BalanceResponse struct {
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	Kind           string          `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
}
