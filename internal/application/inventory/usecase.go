package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de inventario (IN/OUT) de forma
// transaccional: la cabecera y todas sus líneas se confirman juntas o no se
// persiste nada.
type RecordMovementUseCase struct {
	txRunner TxRunner
	events   EventPublisher // opcional; nil desactiva la publicación
}

// NewRecordMovementUseCase construye el caso de uso. events puede ser nil.
func NewRecordMovementUseCase(txRunner TxRunner, events EventPublisher) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, events: events}
}

// Record valida la solicitud y persiste el movimiento completo en una sola
// transacción. Cualquier renglón inválido (cantidad no positiva, producto
// inexistente) aborta la operación sin escritura parcial.
func (uc *RecordMovementUseCase) Record(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !entity.ValidMovementType(in.TransactionType) {
		return nil, fmt.Errorf("transaction_type must be IN or OUT: %w", domain.ErrInvalidInput)
	}
	if len(in.Details) == 0 {
		return nil, fmt.Errorf("details must contain at least one line: %w", domain.ErrInvalidInput)
	}
	for i, d := range in.Details {
		if d.Quantity <= 0 {
			return nil, fmt.Errorf("details[%d]: quantity must be greater than zero: %w", i, domain.ErrInvalidInput)
		}
		if d.Product <= 0 {
			return nil, fmt.Errorf("details[%d]: product is required: %w", i, domain.ErrInvalidInput)
		}
	}

	movement := &entity.Movement{
		Type:      in.TransactionType,
		Notes:     in.Notes,
		Timestamp: time.Now().UTC(),
	}
	for _, d := range in.Details {
		movement.Lines = append(movement.Lines, entity.Line{
			ProductID: d.Product,
			Quantity:  d.Quantity,
		})
	}

	var names map[int64]string
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Resolver los productos DENTRO de la tx: una referencia inválida en
		// cualquier renglón revierte la transacción completa.
		ids := make([]int64, 0, len(movement.Lines))
		for _, l := range movement.Lines {
			ids = append(ids, l.ProductID)
		}
		var err error
		names, err = productRepo.NamesByID(ctx, ids)
		if err != nil {
			return err
		}
		for i, l := range movement.Lines {
			if _, ok := names[l.ProductID]; !ok {
				return fmt.Errorf("details[%d]: product %d not found: %w", i, l.ProductID, domain.ErrInvalidInput)
			}
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		// Las fallas de publicación se registran dentro del publisher; la
		// escritura ya está confirmada y no se revierte por esto.
		var total int64
		for _, l := range movement.Lines {
			total += l.Quantity
		}
		_ = uc.events.PublishMovementRecorded(ctx, MovementRecordedEvent{
			EventID:    uuid.New().String(),
			EventType:  "inventory.movement.recorded",
			MovementID: movement.ID,
			Type:       movement.Type,
			LineCount:  len(movement.Lines),
			TotalQty:   total,
			Timestamp:  movement.Timestamp,
		})
	}

	return toTransactionResponse(movement, names), nil
}

func toTransactionResponse(m *entity.Movement, names map[int64]string) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:              m.ID,
		TransactionType: m.Type,
		Timestamp:       m.Timestamp,
		Notes:           m.Notes,
		Details:         make([]dto.TransactionDetailResponse, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		name := l.ProductName
		if name == "" {
			name = names[l.ProductID]
		}
		out.Details = append(out.Details, dto.TransactionDetailResponse{
			ProductID:   l.ProductID,
			ProductName: name,
			Quantity:    l.Quantity,
		})
	}
	return out
}
