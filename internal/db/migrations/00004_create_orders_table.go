package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrdersTable, DownOrdersTable)
}

func UpOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE orders
(
    id UUID PRIMARY KEY,
    invoice_number VARCHAR(255) NOT NULL UNIQUE,
    product_id UUID NOT NULL,
    product_name VARCHAR(255) NOT NULL,
    package_name VARCHAR(255) NOT NULL,
    package_price BIGINT NOT NULL,
    customer_name VARCHAR(255) NOT NULL,
    customer_email VARCHAR(255) NOT NULL,
    customer_phone VARCHAR(255) NOT NULL,
    package_details JSONB NOT NULL DEFAULT '{}',
    subtotal BIGINT NOT NULL,
    discount_code VARCHAR(255),
    discount_amount BIGINT NOT NULL DEFAULT 0,
    tax BIGINT NOT NULL DEFAULT 0,
    total BIGINT NOT NULL,
    payment_method VARCHAR(255) NOT NULL DEFAULT 'bank',
    payment_bank VARCHAR(255) NOT NULL DEFAULT '',
    payment_status VARCHAR(255) NOT NULL DEFAULT 'pending',
    payment_proof_url TEXT,
    payment_deadline TIMESTAMP NOT NULL,
    paid_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	return err
}

func DownOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE orders;")
	return err
}
