// Package testdb opens an in-memory sqlite database with the order flow
// schema, for repository and service tests that need real SQL.
package testdb

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var schema = []string{
	`
CREATE TABLE IF NOT EXISTS companies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS locations (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  name TEXT NOT NULL,
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS employees (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  location_id TEXT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL DEFAULT '0',
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number INTEGER NOT NULL,
  company_id TEXT NOT NULL,
  location_id TEXT NOT NULL,
  employee_id TEXT,
  customer_id TEXT,
  table_number TEXT,
  order_type TEXT,
  status TEXT NOT NULL,
  total TEXT NOT NULL DEFAULT '0',
  note TEXT,
  public_id TEXT,
  started_at DATETIME,
  completed_at DATETIME,
  canceled_at DATETIME,
  deleted_by TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT,
  quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  total TEXT NOT NULL,
  notes TEXT,
  deleted_by TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS order_item_modifiers (
  id TEXT PRIMARY KEY,
  order_item_id TEXT NOT NULL,
  modifier_id TEXT,
  modifier_name TEXT NOT NULL,
  price_change TEXT NOT NULL DEFAULT '0',
  deleted_by TEXT,
  created_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS order_item_extras (
  id TEXT PRIMARY KEY,
  order_item_id TEXT NOT NULL,
  extra_id TEXT,
  extra_name TEXT NOT NULL,
  price TEXT NOT NULL DEFAULT '0',
  deleted_by TEXT,
  created_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS order_item_exceptions (
  id TEXT PRIMARY KEY,
  order_item_id TEXT NOT NULL,
  exception_id TEXT,
  exception_name TEXT NOT NULL,
  deleted_by TEXT,
  created_at DATETIME,
  deleted_at DATETIME
);`,
	`
CREATE TABLE IF NOT EXISTS order_events (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  event_type TEXT NOT NULL,
  from_status TEXT,
  to_status TEXT NOT NULL,
  actor TEXT NOT NULL,
  actor_id TEXT,
  location_id TEXT NOT NULL,
  company_id TEXT NOT NULL,
  metadata TEXT,
  created_at DATETIME
);`,
}

// Open returns a fresh in-memory database with the full schema applied.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}
