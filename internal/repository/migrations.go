package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS teams (
	team_id UUID PRIMARY KEY,
	name    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	user_id UUID PRIMARY KEY,
	name    TEXT NOT NULL,
	team_id UUID NULL REFERENCES teams(team_id)
);

CREATE TABLE IF NOT EXISTS alerts (
	alert_id                   UUID PRIMARY KEY,
	title                      TEXT NOT NULL,
	message                    TEXT NOT NULL,
	severity                   TEXT NOT NULL,
	delivery_channels          TEXT[] NOT NULL DEFAULT '{in_app}',
	reminder_frequency_minutes INTEGER NOT NULL DEFAULT 120,
	start_at                   TIMESTAMPTZ NULL,
	expires_at                 TIMESTAMPTZ NULL,
	reminders_enabled          BOOLEAN NOT NULL DEFAULT TRUE,
	audience                   JSONB NOT NULL,
	is_archived                BOOLEAN NOT NULL DEFAULT FALSE,
	created_at                 TIMESTAMPTZ NOT NULL,
	updated_at                 TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notification_deliveries (
	delivery_id  UUID PRIMARY KEY,
	alert_id     UUID NOT NULL REFERENCES alerts(alert_id),
	user_id      UUID NOT NULL,
	channel      TEXT NOT NULL,
	delivered_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deliveries_alert_user ON notification_deliveries(alert_id, user_id, delivered_at DESC);

CREATE TABLE IF NOT EXISTS user_alert_preferences (
	preference_id   UUID PRIMARY KEY,
	alert_id        UUID NOT NULL REFERENCES alerts(alert_id),
	user_id         UUID NOT NULL,
	read_state      TEXT NOT NULL DEFAULT 'unread',
	last_snoozed_at TIMESTAMPTZ NULL,
	updated_at      TIMESTAMPTZ NOT NULL,
	UNIQUE (alert_id, user_id)
);
`,
	},
}

// Migrate applies any outstanding schema migrations in order.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
	}

	return nil
}
