package repos

import (
	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StatusRepo struct{ db *sqlx.DB }

func NewStatusRepo(db *sqlx.DB) *StatusRepo { return &StatusRepo{db: db} }

const statusCols = `id, name, display_name, color, display_order, active, is_default`

func (r *StatusRepo) ListActive() ([]domain.ProductStatus, error) {
	var out []domain.ProductStatus
	err := r.db.Select(&out, `
  SELECT `+statusCols+` FROM product_statuses
  WHERE active = 1
  ORDER BY display_order ASC`)
	return out, err
}

func (r *StatusRepo) Get(id string) (domain.ProductStatus, error) {
	var s domain.ProductStatus
	err := r.db.Get(&s, `SELECT `+statusCols+` FROM product_statuses WHERE id = ?`, id)
	return s, err
}

func (r *StatusRepo) GetByName(name string) (domain.ProductStatus, error) {
	var s domain.ProductStatus
	err := r.db.Get(&s, `SELECT `+statusCols+` FROM product_statuses WHERE name = ?`, name)
	return s, err
}

// Default returns the status applied to products created without one.
func (r *StatusRepo) Default() (domain.ProductStatus, error) {
	var s domain.ProductStatus
	err := r.db.Get(&s, `SELECT `+statusCols+` FROM product_statuses WHERE is_default = 1`)
	return s, err
}
