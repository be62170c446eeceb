package partner

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/google/uuid"
)

// ==================== Client DTOs ====================

// ClientRequest creates or updates a client
type ClientRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	CUIT         string `json:"cuit" binding:"omitempty,cuit"`
	Phone        string `json:"phone" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=100"`
	Address      string `json:"address" binding:"max=255"`
	City         string `json:"city" binding:"max=100"`
	Province     string `json:"province" binding:"max=100"`
	IVACondition string `json:"iva_condition"`
}

// ClientResponse represents a client
type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	CUIT         string    `json:"cuit,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Province     string    `json:"province,omitempty"`
	IVACondition string    `json:"iva_condition"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToClientResponse converts a client to its response
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		TenantID:     c.TenantID,
		Name:         c.Name,
		CUIT:         c.CUIT,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		City:         c.City,
		Province:     c.Province,
		IVACondition: string(c.IVACondition),
		CreatedAt:    c.CreatedAt,
	}
}

// ==================== Supplier DTOs ====================

// SupplierRequest creates or updates a supplier
type SupplierRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	CUITCUIL string `json:"cuit_cuil" binding:"omitempty,cuit"`
	Phone    string `json:"phone" binding:"max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	Address  string `json:"address" binding:"max=255"`
}

// SupplierResponse represents a supplier
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	CUITCUIL  string    `json:"cuit_cuil,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSupplierResponse converts a supplier to its response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		CUITCUIL:  s.CUITCUIL,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}
