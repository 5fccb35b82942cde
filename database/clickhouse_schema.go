package database

import (
	"context"
	"fmt"
)

// Analytics tables are append-only. Optional attributes are Nullable so that
// "not supplied" stays distinguishable from the empty string.
var clickHouseSchema = []string{
	`CREATE TABLE IF NOT EXISTS page_views (
		id               UUID,
		created_at       DateTime64(3, 'UTC'),
		path             String,
		title            Nullable(String),
		session_id       Nullable(String),
		user_id          Nullable(String),
		ip_address       Nullable(String),
		user_agent       Nullable(String),
		referrer         Nullable(String),
		utm_source       Nullable(String),
		utm_medium       Nullable(String),
		utm_campaign     Nullable(String),
		country          Nullable(String),
		device           Nullable(String),
		browser          Nullable(String),
		os               Nullable(String),
		duration_seconds UInt32 DEFAULT 0,
		locale           Nullable(String)
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(created_at)
	ORDER BY created_at`,

	`CREATE TABLE IF NOT EXISTS product_views (
		id                 UUID,
		created_at         DateTime64(3, 'UTC'),
		product_id         String,
		product_variant_id Nullable(String),
		session_id         Nullable(String),
		user_id            Nullable(String),
		ip_address         Nullable(String),
		user_agent         Nullable(String),
		referrer           Nullable(String),
		country            Nullable(String),
		city               Nullable(String),
		device             Nullable(String),
		browser            Nullable(String),
		os                 Nullable(String),
		duration_seconds   UInt32 DEFAULT 0,
		locale             Nullable(String)
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(created_at)
	ORDER BY (created_at, product_id)`,

	`CREATE TABLE IF NOT EXISTS analytics_events (
		id          UUID,
		created_at  DateTime64(3, 'UTC'),
		event_name  String,
		category    LowCardinality(String) DEFAULT 'custom',
		label       Nullable(String),
		value       Nullable(Decimal(10, 2)),
		properties  String DEFAULT '{}',
		session_id  Nullable(String),
		user_id     Nullable(String),
		product_id  Nullable(String),
		order_id    Nullable(String),
		path        Nullable(String),
		ip_address  Nullable(String),
		user_agent  Nullable(String),
		locale      Nullable(String)
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(created_at)
	ORDER BY (created_at, event_name)`,
}

// EnsureSchema creates the analytics tables when they do not exist yet.
func (c *ClickHouseClient) EnsureSchema(ctx context.Context) error {
	for _, ddl := range clickHouseSchema {
		if err := c.Conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating ClickHouse schema: %w", err)
		}
	}
	return nil
}
