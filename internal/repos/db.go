package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog and accounts if DB is empty (idempotent; safe on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('customer','seller','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Products (stock lives here: one authoritative counter per product)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  seller_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_seller   ON products(seller_id);

-- Carts (one per user; cleared, not deleted, on checkout)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE (cart_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id);

-- Orders (append-only; only status ever changes after creation)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','processing','shipped','delivered','cancelled')),
  total_amount NUMERIC NOT NULL CHECK (total_amount >= 0),
  shipping_address TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL CHECK (price >= 0),   -- price at time of purchase
  UNIQUE (order_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	// Demo sellers must exist before products reference them.
	for _, u := range demoUsers() {
		tx.MustExec(`INSERT INTO users(id,username,email,full_name,password_hash,role)
		  VALUES(?,?,?,?,?,?) ON CONFLICT(email) DO NOTHING`,
			u.ID, u.Username, u.Email, u.FullName, u.Hash, u.Role)
	}

	tx.MustExec(`INSERT INTO products(id,name,description,price,image_url,category,stock,seller_id) VALUES
	  ('prod-iphone15','iPhone 15 Pro Max','Flagship Apple phone with the A17 Pro chip',1299,'/images/iphone15promax.jpg','smartphones',50,'u-seller'),
	  ('prod-s24','Samsung Galaxy S24 Ultra','High-end Android phone with S Pen',1199,'/images/s24ultra.jpg','smartphones',45,'u-seller'),
	  ('prod-xiaomi14','Xiaomi 14 Ultra','Photography flagship co-engineered with Leica',1099,'/images/xiaomi14.jpg','smartphones',30,'u-seller'),
	  ('prod-watch9','Apple Watch Series 9','Smartwatch with health tracking',399,'/images/applewatchs9.jpg','wearables',60,'u-seller')`)

	return tx.Commit()
}

type seedUser struct {
	ID, Username, Email, FullName, Role, Hash string
}

func demoUsers() []seedUser {
	mk := func(id, username, email, fullName, role, raw string) seedUser {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return seedUser{ID: id, Username: username, Email: email, FullName: fullName, Role: role, Hash: string(h)}
	}
	return []seedUser{
		mk("u-customer", "customer", "customer@example.com", "Demo Customer", "customer", "Passw0rd!"),
		mk("u-seller", "seller", "seller@example.com", "Demo Seller", "seller", "Passw0rd!"),
		mk("u-admin", "admin", "admin@example.com", "Demo Admin", "admin", "Passw0rd!"),
	}
}

// seedUsers ensures the demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range demoUsers() {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,email,full_name,password_hash,role)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Username, x.Email, x.FullName, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
