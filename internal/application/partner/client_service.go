// Package partner manages clients and suppliers. Their balances are read
// from the ledger by the finance package.
package partner

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client operations
type ClientService struct {
	txScope unitofwork.TransactionScope
}

// NewClientService creates a new ClientService
func NewClientService(txScope unitofwork.TransactionScope) *ClientService {
	return &ClientService{txScope: txScope}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req ClientRequest) (*ClientResponse, error) {
	condition, err := partner.ParseIVACondition(req.IVACondition)
	if err != nil {
		return nil, err
	}
	client, err := partner.NewClient(tenantID, req.Name, req.CUIT)
	if err != nil {
		return nil, err
	}
	client.IVACondition = condition
	client.SetContact(req.Phone, req.Email, req.Address, req.City, req.Province)

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.ClientRepo().Save(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Get retrieves a client by ID
func (s *ClientService) Get(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	var resp ClientResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		client, err := repos.ClientRepo().FindByIDForTenant(ctx, tenantID, clientID)
		if err != nil {
			return err
		}
		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List lists clients
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ClientResponse, error) {
	var items []ClientResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		clients, err := repos.ClientRepo().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		items = make([]ClientResponse, 0, len(clients))
		for i := range clients {
			items = append(items, ToClientResponse(&clients[i]))
		}
		return nil
	})
	return items, err
}

// Update replaces a client's data
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req ClientRequest) (*ClientResponse, error) {
	condition, err := partner.ParseIVACondition(req.IVACondition)
	if err != nil {
		return nil, err
	}
	var resp ClientResponse
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		client, err := repos.ClientRepo().FindByIDForTenant(ctx, tenantID, clientID)
		if err != nil {
			return err
		}
		if err := client.Update(req.Name, req.CUIT, condition); err != nil {
			return err
		}
		client.SetContact(req.Phone, req.Email, req.Address, req.City, req.Province)
		if err := repos.ClientRepo().Save(ctx, client); err != nil {
			return err
		}
		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
