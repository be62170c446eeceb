package inventory

import (
	"context"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// InternalDeliveryService moves finished goods between locations through
// delivery notes. Stock leaves the origin and reaches the destination when
// the note is dispatched.
type InternalDeliveryService struct {
	txScope         unitofwork.TransactionScope
	ledger          *StockLedger
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewInternalDeliveryService creates a new InternalDeliveryService
func NewInternalDeliveryService(txScope unitofwork.TransactionScope, ledger *StockLedger) *InternalDeliveryService {
	if ledger == nil {
		ledger = NewStockLedger("")
	}
	return &InternalDeliveryService{txScope: txScope, ledger: ledger, now: time.Now}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *InternalDeliveryService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create validates and stores a draft note
func (s *InternalDeliveryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInternalDeliveryRequest) (*InternalDeliveryResponse, error) {
	lines := make([]inventory.TransferLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, inventory.TransferLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	note, err := inventory.NewInternalDeliveryNote(tenantID, req.OriginLocalID, req.DestinationLocalID, lines, req.Notes, req.UserID)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		for _, id := range []uuid.UUID{note.OriginLocalID, note.DestinationLocalID} {
			if _, err := repos.LocalRepo().FindByIDForTenant(ctx, tenantID, id); err != nil {
				return err
			}
		}
		for _, item := range note.Items {
			if err := ensureProduct(ctx, repos, tenantID, item.ProductID); err != nil {
				return err
			}
		}
		return repos.InternalDeliveryRepo().Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	resp := ToInternalDeliveryResponse(note)
	return &resp, nil
}

// Get returns a note with its items
func (s *InternalDeliveryService) Get(ctx context.Context, tenantID, noteID uuid.UUID) (*InternalDeliveryResponse, error) {
	var resp InternalDeliveryResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		note, err := repos.InternalDeliveryRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		resp = ToInternalDeliveryResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Dispatch transfers every item from origin to destination and marks the
// note in transit. A short item rolls back the whole note.
func (s *InternalDeliveryService) Dispatch(ctx context.Context, tenantID, noteID uuid.UUID) (resp *InternalDeliveryResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InternalDeliveryService", "Dispatch",
		attribute.String("note_id", noteID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var note *inventory.InternalDeliveryNote
	err = s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		var err error
		note, err = repos.InternalDeliveryRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		if err := note.MarkDispatched(s.now()); err != nil {
			return err
		}
		for _, item := range note.Items {
			if err := s.ledger.Transfer(ctx, repos, tenantID, item.ProductID, note.OriginLocalID, note.DestinationLocalID, item.Quantity); err != nil {
				return err
			}
		}
		return repos.InternalDeliveryRepo().UpdateStatus(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	for _, item := range note.Items {
		s.businessMetrics.RecordStockMovement(ctx, tenantID, telemetry.MovementTransfer, item.Quantity)
	}
	logger.L(ctx).Info("internal delivery dispatched",
		zap.String("note_id", note.ID.String()),
		zap.Int("items", len(note.Items)))
	out := ToInternalDeliveryResponse(note)
	return &out, nil
}

// Receive marks a dispatched note as received
func (s *InternalDeliveryService) Receive(ctx context.Context, tenantID, noteID uuid.UUID) (*InternalDeliveryResponse, error) {
	return s.transition(ctx, tenantID, noteID, func(n *inventory.InternalDeliveryNote) error {
		return n.MarkReceived(s.now())
	})
}

// Cancel drops a draft note. Dispatched notes cannot be cancelled.
func (s *InternalDeliveryService) Cancel(ctx context.Context, tenantID, noteID uuid.UUID) (*InternalDeliveryResponse, error) {
	return s.transition(ctx, tenantID, noteID, (*inventory.InternalDeliveryNote).Cancel)
}

func (s *InternalDeliveryService) transition(ctx context.Context, tenantID, noteID uuid.UUID, apply func(*inventory.InternalDeliveryNote) error) (*InternalDeliveryResponse, error) {
	var resp InternalDeliveryResponse
	err := s.txScope.Execute(ctx, func(repos unitofwork.Repositories) error {
		note, err := repos.InternalDeliveryRepo().FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		if err := apply(note); err != nil {
			return err
		}
		if err := repos.InternalDeliveryRepo().UpdateStatus(ctx, note); err != nil {
			return err
		}
		resp = ToInternalDeliveryResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
