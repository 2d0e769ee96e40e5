package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer. Also keeps ":memory:" databases to a single connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog (mirrored from the vendor)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  parent_id TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS branding_methods(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  base_cost TEXT NOT NULL DEFAULT '0',
  color_upcharge TEXT NOT NULL DEFAULT '0',
  setup_fee TEXT NOT NULL DEFAULT '0',
  minimum_quantity INTEGER NOT NULL DEFAULT 1
);

-- money columns are TEXT so decimals round-trip exactly
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  base_price TEXT NOT NULL DEFAULT '0',
  category TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  images_json TEXT NOT NULL DEFAULT '[]',
  colors_json TEXT NOT NULL DEFAULT '[]',
  sizes_json TEXT NOT NULL DEFAULT '[]',
  stock_count INTEGER NOT NULL DEFAULT 0,
  branding_options_json TEXT NOT NULL DEFAULT '[]',
  specifications_json TEXT NOT NULL DEFAULT '{}',
  minimum_order INTEGER NOT NULL DEFAULT 1,
  active INTEGER NOT NULL DEFAULT 1,
  last_updated DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_brand    ON products(brand);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Sync audit trail; rows are never deleted
CREATE TABLE IF NOT EXISTS sync_logs(
  id TEXT PRIMARY KEY,
  sync_type TEXT NOT NULL CHECK (sync_type IN ('categories','branding_methods','products')),
  status TEXT NOT NULL CHECK (status IN ('running','completed','failed')),
  records_processed INTEGER NOT NULL DEFAULT 0,
  error_message TEXT NOT NULL DEFAULT '',
  started_at DATETIME NOT NULL,
  completed_at DATETIME NULL
);
CREATE INDEX IF NOT EXISTS idx_sync_logs_started ON sync_logs(started_at);

-- Session cart
CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  selected_color TEXT NOT NULL DEFAULT '',
  selected_size TEXT NOT NULL DEFAULT '',
  branding_method_id TEXT NOT NULL DEFAULT '',
  branding_colors INTEGER NOT NULL DEFAULT 1,
  custom_branding TEXT NOT NULL DEFAULT '',
  unit_price TEXT NOT NULL,
  branding_cost TEXT NOT NULL DEFAULT '0',
  created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cart_items_session ON cart_items(session_id);

-- Quote requests (checkout output)
CREATE TABLE IF NOT EXISTS quote_requests(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL DEFAULT '',
  company_name TEXT NOT NULL DEFAULT '',
  items_json TEXT NOT NULL DEFAULT '[]',
  total_amount TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quote_requests_created ON quote_requests(created_at);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// EnsureAdmin creates the operator account if the email is not taken yet.
// Safe to run on every startup.
func EnsureAdmin(db *sqlx.DB, email, name, password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES(?,?,?,?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, uuid.NewString(), email, name, string(h))
	return err
}
