package repos

import (
	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, title, description, price, condition, measurements, delivered, paid, status_id,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	return out, err
}

// ListByStatusName returns products whose status has the given internal
// name. The public storefront uses this with "available" only.
func (r *ProductRepo) ListByStatusName(name string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT `+productCols+`
  FROM products
  WHERE status_id IN (SELECT id FROM product_statuses WHERE name = ?)
  ORDER BY created_at DESC`, name)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
  INSERT INTO products(id,title,description,price,condition,measurements,delivered,paid,status_id)
  VALUES(?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Title, p.Description, p.Price, p.Condition, p.Measurements, p.Delivered, p.Paid, p.StatusID)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
  UPDATE products
  SET title=?, description=?, price=?, condition=?, measurements=?, delivered=?, paid=?,
      status_id=?, updated_at=CURRENT_TIMESTAMP
  WHERE id=?`,
		p.Title, p.Description, p.Price, p.Condition, p.Measurements, p.Delivered, p.Paid, p.StatusID, p.ID)
	return err
}

// Delete removes a product; images and attribute bindings cascade.
func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
