package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL tablas del libro de inventario. Las líneas se borran en cascada
// con su movimiento; el borrado de un producto referenciado queda RESTRINGIDO
// para no destruir el historial de auditoría.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS products (
	id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE CHECK (name <> ''),
	sku         TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS stock_transactions (
	id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	transaction_type TEXT NOT NULL CHECK (transaction_type IN ('IN', 'OUT')),
	notes            TEXT NOT NULL DEFAULT '',
	timestamp        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transaction_details (
	id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	transaction_id BIGINT NOT NULL REFERENCES stock_transactions(id) ON DELETE CASCADE,
	product_id     BIGINT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
	quantity       BIGINT NOT NULL CHECK (quantity > 0)
);

CREATE INDEX IF NOT EXISTS idx_details_transaction ON transaction_details(transaction_id);
CREATE INDEX IF NOT EXISTS idx_details_product ON transaction_details(product_id);
CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON stock_transactions(timestamp DESC, id DESC);
`

// EnsureSchema crea las tablas si no existen. Se ejecuta al arrancar.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
