package repos

import (
	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ImageRepo struct{ db *sqlx.DB }

func NewImageRepo(db *sqlx.DB) *ImageRepo { return &ImageRepo{db: db} }

func (r *ImageRepo) ListByProduct(productID string) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	err := r.db.Select(&out, `
  SELECT id, product_id, url, is_main, display_order
  FROM product_images
  WHERE product_id = ?
  ORDER BY display_order ASC`, productID)
	return out, err
}

func (r *ImageRepo) Insert(img domain.ProductImage) error {
	_, err := r.db.Exec(`
  INSERT INTO product_images(id,product_id,url,is_main,display_order)
  VALUES(?,?,?,?,?)`,
		img.ID, img.ProductID, img.URL, img.IsMain, img.DisplayOrder)
	return err
}

func (r *ImageRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM product_images WHERE id=?`, id)
	return err
}

func (r *ImageRepo) DeleteByProduct(productID string) error {
	_, err := r.db.Exec(`DELETE FROM product_images WHERE product_id=?`, productID)
	return err
}
