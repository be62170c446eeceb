// Package partner holds the counterparties: clients who buy and suppliers
// who sell raw materials. Their balances are derived from ledger
// transactions and never stored here.
package partner

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// IVACondition is the Argentine VAT registration status of a counterparty
type IVACondition string

const (
	IVAResponsableInscripto IVACondition = "Responsable Inscripto"
	IVAMonotributista       IVACondition = "Monotributista"
	IVAExento               IVACondition = "Exento"
	IVAConsumidorFinal      IVACondition = "Consumidor Final"
)

// Client is a buyer
type Client struct {
	shared.TenantAggregateRoot
	Name         string       `gorm:"type:varchar(200);not null"`
	CUIT         string       `gorm:"column:cuit;type:varchar(20);index"`
	Phone        string       `gorm:"type:varchar(50)"`
	Email        string       `gorm:"type:varchar(100)"`
	Address      string       `gorm:"type:varchar(255)"`
	City         string       `gorm:"type:varchar(100)"`
	Province     string       `gorm:"type:varchar(100)"`
	IVACondition IVACondition `gorm:"column:iva_condition;type:varchar(30);not null;default:'Consumidor Final'"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a client
func NewClient(tenantID uuid.UUID, name, cuit string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Client name cannot be empty")
	}
	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		CUIT:                strings.TrimSpace(cuit),
		IVACondition:        IVAConsumidorFinal,
	}, nil
}

// ParseIVACondition validates a VAT condition; empty means Consumidor Final
func ParseIVACondition(raw string) (IVACondition, error) {
	switch c := IVACondition(strings.TrimSpace(raw)); c {
	case "":
		return IVAConsumidorFinal, nil
	case IVAResponsableInscripto, IVAMonotributista, IVAExento, IVAConsumidorFinal:
		return c, nil
	default:
		return "", shared.Validationf("Unknown IVA condition %q", raw)
	}
}

// Update replaces the client's descriptive fields
func (c *Client) Update(name, cuit string, condition IVACondition) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validationf("Client name cannot be empty")
	}
	c.Name = name
	c.CUIT = strings.TrimSpace(cuit)
	c.IVACondition = condition
	c.Touch()
	return nil
}

// SetContact sets phone, email and address
func (c *Client) SetContact(phone, email, address, city, province string) {
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.Address = strings.TrimSpace(address)
	c.City = strings.TrimSpace(city)
	c.Province = strings.TrimSpace(province)
	c.Touch()
}
