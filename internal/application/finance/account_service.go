package finance

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountService maintains the chart of accounts and the reference data
// used to book payments
type AccountService struct {
	txScope unitofwork.TransactionScope
}

// NewAccountService creates a new AccountService
func NewAccountService(txScope unitofwork.TransactionScope) *AccountService {
	return &AccountService{txScope: txScope}
}

// CreateAccount creates an account. Codes are unique within the tenant.
func (s *AccountService) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	account, err := finance.NewAccount(tenantID, req.Name, finance.AccountType(req.AccountType), req.Code)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		exists, err := repos.AccountRepo().ExistsByCode(ctx, tenantID, account.Code)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainErrorf(shared.CodeAlreadyExists, "Account code %s already exists", account.Code)
		}
		return repos.AccountRepo().Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	resp := toAccountResponse(account)
	return &resp, nil
}

// ListAccounts lists accounts
func (s *AccountService) ListAccounts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AccountResponse, error) {
	var items []AccountResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.AccountRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]AccountResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toAccountResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}

// AccountBalance sums the movements of an account
func (s *AccountService) AccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (*AccountBalanceResponse, error) {
	var resp AccountBalanceResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, accountID); err != nil {
			return err
		}
		sum, err := repos.TransactionRepo().SumForAccount(ctx, tenantID, accountID)
		if err != nil {
			return err
		}
		resp = AccountBalanceResponse{AccountID: accountID, Balance: shared.RoundMoney(sum)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCashRegister creates a cash register, optionally tied to a store
func (s *AccountService) CreateCashRegister(ctx context.Context, tenantID uuid.UUID, req CreateCashRegisterRequest) (*CashRegisterResponse, error) {
	register, err := finance.NewCashRegister(tenantID, req.Name, req.LocalID)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if req.LocalID != nil {
			if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, *req.LocalID); err != nil {
				return err
			}
		}
		return repos.CashRegisterRepo().Save(ctx, register)
	})
	if err != nil {
		return nil, err
	}
	return &CashRegisterResponse{ID: register.ID, Name: register.Name, LocalID: register.LocalID}, nil
}

// ListCashRegisters lists cash registers
func (s *AccountService) ListCashRegisters(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CashRegisterResponse, error) {
	var items []CashRegisterResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.CashRegisterRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]CashRegisterResponse, 0, len(rows))
		for _, r := range rows {
			items = append(items, CashRegisterResponse{ID: r.ID, Name: r.Name, LocalID: r.LocalID})
		}
		return nil
	})
	return items, err
}

// CreatePaymentMethod creates a payment method
func (s *AccountService) CreatePaymentMethod(ctx context.Context, tenantID uuid.UUID, req CreateNamedRequest) (*NamedResponse, error) {
	method, err := finance.NewPaymentMethodType(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.PaymentMethodRepo().Save(ctx, method)
	}); err != nil {
		return nil, err
	}
	return &NamedResponse{ID: method.ID, Name: method.Name}, nil
}

// ListPaymentMethods lists payment methods
func (s *AccountService) ListPaymentMethods(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]NamedResponse, error) {
	var items []NamedResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.PaymentMethodRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]NamedResponse, 0, len(rows))
		for _, r := range rows {
			items = append(items, NamedResponse{ID: r.ID, Name: r.Name})
		}
		return nil
	})
	return items, err
}

// CreateBank creates a bank
func (s *AccountService) CreateBank(ctx context.Context, tenantID uuid.UUID, req CreateNamedRequest) (*NamedResponse, error) {
	bank, err := finance.NewBank(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.BankRepo().Save(ctx, bank)
	}); err != nil {
		return nil, err
	}
	return &NamedResponse{ID: bank.ID, Name: bank.Name}, nil
}

// ListBanks lists banks
func (s *AccountService) ListBanks(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]NamedResponse, error) {
	var items []NamedResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.BankRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]NamedResponse, 0, len(rows))
		for _, r := range rows {
			items = append(items, NamedResponse{ID: r.ID, Name: r.Name})
		}
		return nil
	})
	return items, err
}

// CreateCostRule creates a financial cost rule for a payment method,
// optionally restricted to one bank
func (s *AccountService) CreateCostRule(ctx context.Context, tenantID uuid.UUID, req CreateCostRuleRequest) (*CostRuleResponse, error) {
	rule, err := finance.NewFinancialCostRule(tenantID, req.Name, req.PaymentMethodID, req.BankID, req.Percentage)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if _, err := repos.PaymentMethodRepo().FindByIDForTenant(ctx, tenantID, req.PaymentMethodID); err != nil {
			return err
		}
		if req.BankID != nil {
			if _, err := repos.BankRepo().FindByIDForTenant(ctx, tenantID, *req.BankID); err != nil {
				return err
			}
		}
		return repos.CostRuleRepo().Save(ctx, rule)
	})
	if err != nil {
		return nil, err
	}
	resp := toCostRuleResponse(rule)
	return &resp, nil
}

// ListCostRules lists financial cost rules
func (s *AccountService) ListCostRules(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CostRuleResponse, error) {
	var items []CostRuleResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		rows, err := repos.CostRuleRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]CostRuleResponse, 0, len(rows))
		for i := range rows {
			items = append(items, toCostRuleResponse(&rows[i]))
		}
		return nil
	})
	return items, err
}
