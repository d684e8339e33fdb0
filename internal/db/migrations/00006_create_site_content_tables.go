package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpSiteContentTables, DownSiteContentTables)
}

func UpSiteContentTables(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE site_settings
(
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    site_name VARCHAR(255) NOT NULL,
    site_description TEXT,
    favicon_url TEXT,
    meta_title VARCHAR(255),
    meta_description TEXT,
    meta_keywords JSONB,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE TABLE landing_page_sections
(
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    section VARCHAR(255) NOT NULL,
    title VARCHAR(255),
    subtitle VARCHAR(255),
    content TEXT,
    image_url TEXT,
    sort_order INT NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	return err
}

func DownSiteContentTables(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE landing_page_sections;"); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DROP TABLE site_settings;")
	return err
}
