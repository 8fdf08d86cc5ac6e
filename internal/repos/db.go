package repos

import (
	"log"

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
	// sqlite has a single writer; one pooled connection also keeps
	// :memory: databases stable across calls.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Reference statuses must exist before any product row (idempotent).
	if err := seedStatuses(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS product_statuses(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE CHECK (name IN ('pending','available','sold')),
  display_name TEXT NOT NULL,
  color TEXT NOT NULL DEFAULT '',
  display_order INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  is_default INTEGER NOT NULL DEFAULT 0
);
-- at most one default status
CREATE UNIQUE INDEX IF NOT EXISTS idx_statuses_default ON product_statuses(is_default) WHERE is_default = 1;

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price INTEGER NOT NULL CHECK (price >= 0),
  condition TEXT NOT NULL DEFAULT '',
  measurements TEXT NOT NULL DEFAULT '',
  delivered INTEGER NOT NULL DEFAULT 0,
  paid INTEGER NOT NULL DEFAULT 0,
  status_id TEXT NOT NULL REFERENCES product_statuses(id) ON DELETE RESTRICT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_status ON products(status_id);
CREATE INDEX IF NOT EXISTS idx_products_title  ON products(LOWER(title));

CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  is_main INTEGER NOT NULL DEFAULT 0,
  display_order INTEGER NOT NULL DEFAULT 0,
  UNIQUE(product_id, display_order)
);
CREATE INDEX IF NOT EXISTS idx_images_product ON product_images(product_id);

CREATE TABLE IF NOT EXISTS attributes(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('TEXT','SELECT')),
  required INTEGER NOT NULL DEFAULT 0,
  display_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS attribute_options(
  id TEXT PRIMARY KEY,
  attribute_id TEXT NOT NULL REFERENCES attributes(id) ON DELETE CASCADE,
  value TEXT NOT NULL,
  display_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_options_attribute ON attribute_options(attribute_id);

CREATE TABLE IF NOT EXISTS product_attributes(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  attribute_id TEXT NOT NULL REFERENCES attributes(id) ON DELETE CASCADE,
  value TEXT NOT NULL DEFAULT '',
  option_id TEXT REFERENCES attribute_options(id) ON DELETE SET NULL
);
CREATE INDEX IF NOT EXISTS idx_prodattrs_product ON product_attributes(product_id);

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- sessions carry no identity, a valid row just means "is admin"
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  expires_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func seedStatuses(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM product_statuses`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting product statuses")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO product_statuses(id,name,display_name,color,display_order,active,is_default) VALUES
	  ('st-available','available','Disponible','#16a34a',1,1,1),
	  ('st-pending','pending','Apartado','#eab308',2,1,0),
	  ('st-sold','sold','Vendido','#dc2626',3,1,0)`)
	return tx.Commit()
}

// EnsureAdmin creates the single admin account when it does not exist.
// Safe to run on every start.
func EnsureAdmin(db *sqlx.DB, email, password string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO users(id,email,name,password_hash,role) VALUES(?,?,?,?,'ADMIN')`,
		uuid.NewString(), email, "Admin", string(hash))
	return err
}
