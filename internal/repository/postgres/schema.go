package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they do not exist.
// The unique indexes use NULLS NOT DISTINCT (Postgres 15+) so root-level
// siblings collide like any other siblings.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name        TEXT NOT NULL CHECK (char_length(name) BETWEEN 1 AND 255),
				description TEXT,
				owner_id    TEXT NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Rooms),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_owner_idx ON %[1]s (owner_id, created_at DESC)`, tables.Rooms),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				dataroom_id UUID NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
				parent_id   UUID REFERENCES %[1]s(id) ON DELETE CASCADE,
				name        TEXT NOT NULL CHECK (char_length(name) BETWEEN 1 AND 255),
				path        TEXT NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %[1]s_sibling_name_key UNIQUE NULLS NOT DISTINCT (dataroom_id, parent_id, name)
			)`, tables.Folders, tables.Rooms),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_parent_idx ON %[1]s (parent_id)`, tables.Folders),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				dataroom_id   UUID NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
				folder_id     UUID REFERENCES %[3]s(id) ON DELETE CASCADE,
				name          TEXT NOT NULL CHECK (char_length(name) BETWEEN 1 AND 255),
				original_name TEXT NOT NULL,
				file_size     BIGINT NOT NULL,
				mime_type     TEXT NOT NULL CHECK (mime_type = 'application/pdf'),
				content_ref   TEXT NOT NULL,
				content_text  TEXT,
				text_status   TEXT NOT NULL DEFAULT 'pending',
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %[1]s_sibling_name_key UNIQUE NULLS NOT DISTINCT (dataroom_id, folder_id, name)
			)`, tables.Files, tables.Rooms, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_folder_idx ON %[1]s (folder_id)`, tables.Files),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the data room tables for this prefix, children first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Files, tables.Folders, tables.Rooms} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
