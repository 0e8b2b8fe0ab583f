package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta la cabecera y después cada línea. Atomicidad: este método se
// invoca con un Querier transaccional (TxRunner); cualquier error aquí
// revierte cabecera y líneas juntas.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_transactions (transaction_type, notes, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id`,
		movement.Type, movement.Notes, movement.Timestamp,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	for i := range movement.Lines {
		line := &movement.Lines[i]
		line.MovementID = movement.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO transaction_details (transaction_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id`,
			line.MovementID, line.ProductID, line.Quantity,
		).Scan(&line.ID)
		if err != nil {
			// Cubre la carrera en que el producto se borra entre la
			// validación y el INSERT dentro de la misma petición.
			if isForeignKeyViolation(err) {
				return fmt.Errorf("details[%d]: product %d not found: %w", i, line.ProductID, domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	var m entity.Movement
	err := r.q.QueryRow(ctx, `
		SELECT id, transaction_type, notes, timestamp
		FROM stock_transactions WHERE id = $1`, id,
	).Scan(&m.ID, &m.Type, &m.Notes, &m.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	lines, err := r.linesFor(ctx, []int64{m.ID})
	if err != nil {
		return nil, err
	}
	m.Lines = lines[m.ID]
	return &m, nil
}

// List devuelve todos los movimientos, más reciente primero; los empates de
// timestamp los gana el id mayor para que el orden sea determinista.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `
		SELECT id, transaction_type, notes, timestamp
		FROM stock_transactions
		ORDER BY timestamp DESC, id DESC`)
}

// ListByProduct devuelve los movimientos con al menos una línea del producto,
// con TODAS sus líneas; el recorte lo hace el caso de uso.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	return r.list(ctx, `
		SELECT t.id, t.transaction_type, t.notes, t.timestamp
		FROM stock_transactions t
		WHERE EXISTS (
			SELECT 1 FROM transaction_details d
			WHERE d.transaction_id = t.id AND d.product_id = $1
		)
		ORDER BY t.timestamp DESC, t.id DESC`, productID)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	var ids []int64
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.Notes, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return movements, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range movements {
		m.Lines = lines[m.ID]
	}
	return movements, nil
}

// linesFor carga las líneas de los movimientos dados con el nombre del
// producto denormalizado, en orden de inserción (id de línea ascendente).
func (r *MovementRepo) linesFor(ctx context.Context, movementIDs []int64) (map[int64][]entity.Line, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.transaction_id, d.product_id, p.name, d.quantity
		FROM transaction_details d
		JOIN products p ON p.id = d.product_id
		WHERE d.transaction_id = ANY($1)
		ORDER BY d.id ASC`, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[int64][]entity.Line)
	for rows.Next() {
		var l entity.Line
		if err := rows.Scan(&l.ID, &l.MovementID, &l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		lines[l.MovementID] = append(lines[l.MovementID], l)
	}
	return lines, rows.Err()
}
