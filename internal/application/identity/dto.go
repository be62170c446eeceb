package identity

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/identity"
	"github.com/google/uuid"
)

// CreateTenantRequest creates a tenant
type CreateTenantRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// RenameTenantRequest changes a tenant's name
type RenameTenantRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// TenantResponse represents a tenant
type TenantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTenantResponse converts a tenant to its response
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
