package repos

import (
	"github.com/jmoiron/sqlx"

	"shoplite/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, price, image_url, category, stock, seller_id, active,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// GetTx reads a product inside a transaction; the order builder uses it
// to capture the purchase-time price.
func (r *ProductRepo) GetTx(e sqlx.Ext, id string) (domain.Product, error) {
	var p domain.Product
	err := sqlx.Get(e, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE active = 1 ORDER BY created_at DESC`)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE active = 1 AND category = ?
		ORDER BY created_at DESC`, category)
	return out, err
}

func (r *ProductRepo) ListBySeller(sellerID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE seller_id = ?
		ORDER BY created_at DESC`, sellerID)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id, name, description, price, image_url, category, stock, seller_id, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
	`, p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock, p.SellerID)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET name = ?, description = ?, price = ?, image_url = ?, category = ?, stock = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Stock, p.ID)
	return err
}

// Deactivate soft-deletes a product. Rows are kept so historical order
// items stay resolvable.
func (r *ProductRepo) Deactivate(id string) error {
	_, err := r.db.Exec(`UPDATE products SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}
