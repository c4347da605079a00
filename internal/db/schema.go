package db

import (
	"context"
	"fmt"
)

// schemaStatements create the tables the repositories expect. Each statement is
// idempotent so EnsureSchema can run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		address TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		google_place_id TEXT NOT NULL,
		last_used TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, google_place_id)
	)`,
	`CREATE TABLE IF NOT EXISTS paths (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		directions_url TEXT,
		drive_time_seconds DOUBLE PRECISION,
		distance_meters BIGINT,
		url_generated_at TIMESTAMPTZ
	)`,
	`DO $$ BEGIN
		CREATE TYPE path_position AS ENUM ('origin', 'destination', 'waypoint');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`CREATE TABLE IF NOT EXISTS paths_locations (
		id BIGSERIAL PRIMARY KEY,
		path_id BIGINT NOT NULL REFERENCES paths(id) ON DELETE CASCADE,
		location_id BIGINT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		position path_position NOT NULL,
		UNIQUE (path_id, location_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS paths_locations_one_endpoint
		ON paths_locations (path_id, position) WHERE position <> 'waypoint'`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, q Querier) error {
	for i, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("db.EnsureSchema: statement %d: %w", i, err)
		}
	}
	return nil
}
