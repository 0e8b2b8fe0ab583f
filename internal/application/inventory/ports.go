package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cabecera y líneas de un
// movimiento se confirman o se revierten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementRecordedEvent evento emitido tras confirmar un movimiento.
type MovementRecordedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	MovementID int64     `json:"movement_id"`
	Type       string    `json:"transaction_type"`
	LineCount  int       `json:"line_count"`
	TotalQty   int64     `json:"total_qty"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventPublisher publica eventos de movimiento hacia sistemas externos.
// La publicación ocurre después del Commit y nunca afecta el resultado de la
// escritura; las fallas se registran dentro del publisher.
type EventPublisher interface {
	PublishMovementRecorded(ctx context.Context, event MovementRecordedEvent) error
}
