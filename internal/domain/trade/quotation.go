// Package trade covers the commercial documents: quotations, sales,
// delivery notes and purchase orders.
package trade

import (
	"fmt"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "Borrador"
	QuotationSent     QuotationStatus = "Enviada"
	QuotationAccepted QuotationStatus = "Aceptada"
	QuotationRejected QuotationStatus = "Rechazada"
)

// QuotationNumber formats the per-tenant quotation sequence
func QuotationNumber(seq int64) string {
	return fmt.Sprintf("PRE-%03d", seq)
}

// Quotation is a priced offer to a client. It becomes terminal once
// accepted, which happens exactly when it is converted into a sale.
type Quotation struct {
	shared.TenantAggregateRoot
	Number      string          `gorm:"type:varchar(20);not null;index"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status      QuotationStatus `gorm:"type:varchar(20);not null;default:'Borrador'"`
	Notes       string          `gorm:"type:text"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID;references:ID"`
}

// TableName returns the table name for GORM
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem is one quoted line. ProductID may be empty for free-text
// lines, which cannot be converted into a sale.
type QuotationItem struct {
	shared.BaseEntity
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	SizeID      *uuid.UUID      `gorm:"type:uuid"`
	ColorID     *uuid.UUID      `gorm:"type:uuid"`
	Description string          `gorm:"type:varchar(255)"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// QuotationLine carries the fields of a new quotation item
type QuotationLine struct {
	ProductID   *uuid.UUID
	SizeID      *uuid.UUID
	ColorID     *uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Cost        decimal.Decimal
}

// NewQuotation creates a draft quotation and totals its lines
func NewQuotation(tenantID uuid.UUID, number string, clientID uuid.UUID, lines []QuotationLine, userID *uuid.UUID) (*Quotation, error) {
	if clientID == uuid.Nil {
		return nil, shared.Validationf("Quotation client is required")
	}
	if len(lines) == 0 {
		return nil, shared.Validationf("A quotation needs at least one item")
	}
	q := &Quotation{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		Number:              number,
		ClientID:            clientID,
		Date:                time.Now(),
		Status:              QuotationDraft,
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
		if l.UnitPrice.IsNegative() || l.Cost.IsNegative() {
			return nil, shared.Validationf("Quotation prices cannot be negative")
		}
		q.Items = append(q.Items, QuotationItem{
			BaseEntity:  shared.NewBaseEntity(),
			QuotationID: q.ID,
			ProductID:   l.ProductID,
			SizeID:      l.SizeID,
			ColorID:     l.ColorID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Cost:        l.Cost,
		})
	}
	q.TotalAmount = q.computeTotal()
	return q, nil
}

func (q *Quotation) computeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return shared.RoundMoney(total)
}

// EnsureConvertible fails with ErrAlreadyConverted once the quotation has
// been accepted
func (q *Quotation) EnsureConvertible() error {
	if q.Status == QuotationAccepted {
		return shared.NewDomainErrorf(shared.CodeAlreadyConverted, "Quotation %s has already been converted to a sale", q.Number)
	}
	return nil
}

// Accept marks the quotation as converted
func (q *Quotation) Accept() error {
	if err := q.EnsureConvertible(); err != nil {
		return err
	}
	q.Status = QuotationAccepted
	q.Touch()
	return nil
}

// Send moves a draft to Enviada
func (q *Quotation) Send() error {
	if q.Status != QuotationDraft {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Only draft quotations can be sent, status is %s", q.Status)
	}
	q.Status = QuotationSent
	q.Touch()
	return nil
}

// Reject closes an open quotation
func (q *Quotation) Reject() error {
	if q.Status != QuotationDraft && q.Status != QuotationSent {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Cannot reject a quotation in status %s", q.Status)
	}
	q.Status = QuotationRejected
	q.Touch()
	return nil
}
