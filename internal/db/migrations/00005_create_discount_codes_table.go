package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpDiscountCodesTable, DownDiscountCodesTable)
}

func UpDiscountCodesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE discount_codes
(
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    code VARCHAR(255) NOT NULL UNIQUE,
    percent INT NOT NULL,
    valid_from TIMESTAMP,
    valid_until TIMESTAMP,
    max_uses INT,
    used_count INT NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO discount_codes (code, percent)
VALUES ('HEMAT10', 10), ('HEMAT20', 20);`)
	return err
}

func DownDiscountCodesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE discount_codes;")
	return err
}
