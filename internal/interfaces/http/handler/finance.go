package handler

import (
	financeapp "github.com/ejarriada/Fanaticos/internal/application/finance"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// FinanceHandler handles accounts, payments and partner balances
type FinanceHandler struct {
	BaseHandler
	accountService *financeapp.AccountService
	paymentService *financeapp.PaymentService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(accountService *financeapp.AccountService, paymentService *financeapp.PaymentService) *FinanceHandler {
	return &FinanceHandler{
		accountService: accountService,
		paymentService: paymentService,
	}
}

// Routes returns the finance route groups
func (h *FinanceHandler) Routes() *router.DomainGroup {
	finance := router.NewDomainGroup("")

	finance.Group("/accounts").
		POST("", h.CreateAccount).
		GET("", h.ListAccounts).
		GET("/:id/balance", h.AccountBalance)
	finance.Group("/cash-registers").
		POST("", h.CreateCashRegister).
		GET("", h.ListCashRegisters)
	finance.Group("/payment-methods").
		POST("", h.CreatePaymentMethod).
		GET("", h.ListPaymentMethods)
	finance.Group("/banks").
		POST("", h.CreateBank).
		GET("", h.ListBanks)
	finance.Group("/cost-rules").
		POST("", h.CreateCostRule).
		GET("", h.ListCostRules)

	finance.Group("/payments").
		POST("", h.RegisterPayment)
	finance.Group("/sales").
		GET("/:id/payments", h.SalePayments)
	finance.Group("/purchase-orders").
		POST("/:id/payments", h.RegisterSupplierPayment).
		GET("/:id/payments", h.SupplierPayments)

	finance.Group("/clients").
		GET("/:id/balance", h.ClientBalance)
	finance.Group("/suppliers").
		GET("/:id/balance", h.SupplierBalance)

	return finance
}

// ==================== Accounts ====================

// CreateAccount creates a money account
func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	var req financeapp.CreateAccountRequest
	create(h, c, &req, h.accountService.CreateAccount)
}

// ListAccounts lists money accounts
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	list(h, c, h.accountService.ListAccounts)
}

// AccountBalance returns an account's balance
func (h *FinanceHandler) AccountBalance(c *gin.Context) {
	withID(h, c, "id", h.accountService.AccountBalance)
}

// CreateCashRegister creates a cash register
func (h *FinanceHandler) CreateCashRegister(c *gin.Context) {
	var req financeapp.CreateCashRegisterRequest
	create(h, c, &req, h.accountService.CreateCashRegister)
}

// ListCashRegisters lists cash registers
func (h *FinanceHandler) ListCashRegisters(c *gin.Context) {
	list(h, c, h.accountService.ListCashRegisters)
}

// CreatePaymentMethod creates a payment method
func (h *FinanceHandler) CreatePaymentMethod(c *gin.Context) {
	var req financeapp.CreateNamedRequest
	create(h, c, &req, h.accountService.CreatePaymentMethod)
}

// ListPaymentMethods lists payment methods
func (h *FinanceHandler) ListPaymentMethods(c *gin.Context) {
	list(h, c, h.accountService.ListPaymentMethods)
}

// CreateBank creates a bank
func (h *FinanceHandler) CreateBank(c *gin.Context) {
	var req financeapp.CreateNamedRequest
	create(h, c, &req, h.accountService.CreateBank)
}

// ListBanks lists banks
func (h *FinanceHandler) ListBanks(c *gin.Context) {
	list(h, c, h.accountService.ListBanks)
}

// CreateCostRule creates a payment cost rule
func (h *FinanceHandler) CreateCostRule(c *gin.Context) {
	var req financeapp.CreateCostRuleRequest
	create(h, c, &req, h.accountService.CreateCostRule)
}

// ListCostRules lists payment cost rules
func (h *FinanceHandler) ListCostRules(c *gin.Context) {
	list(h, c, h.accountService.ListCostRules)
}

// ==================== Payments ====================

// RegisterPayment books a client payment against a sale
func (h *FinanceHandler) RegisterPayment(c *gin.Context) {
	var req financeapp.RegisterPaymentRequest
	create(h, c, &req, h.paymentService.RegisterPayment)
}

// SalePayments summarizes what has been paid on a sale
func (h *FinanceHandler) SalePayments(c *gin.Context) {
	withID(h, c, "id", h.paymentService.SalePayments)
}

// RegisterSupplierPayment pays a purchase order
func (h *FinanceHandler) RegisterSupplierPayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req financeapp.RegisterSupplierPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.GetUserID(c)
	payment, err := h.paymentService.RegisterSupplierPayment(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// SupplierPayments lists the payments made on a purchase order
func (h *FinanceHandler) SupplierPayments(c *gin.Context) {
	withID(h, c, "id", h.paymentService.SupplierPayments)
}

// ClientBalance returns what a client owes
func (h *FinanceHandler) ClientBalance(c *gin.Context) {
	withID(h, c, "id", h.paymentService.BalanceForClient)
}

// SupplierBalance returns what is owed to a supplier
func (h *FinanceHandler) SupplierBalance(c *gin.Context) {
	withID(h, c, "id", h.paymentService.BalanceForSupplier)
}
