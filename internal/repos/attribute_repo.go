package repos

import (
	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AttributeRepo struct{ db *sqlx.DB }

func NewAttributeRepo(db *sqlx.DB) *AttributeRepo { return &AttributeRepo{db: db} }

func (r *AttributeRepo) List() ([]domain.Attribute, error) {
	var out []domain.Attribute
	if err := r.db.Select(&out, `
  SELECT id, name, type, required, display_order
  FROM attributes ORDER BY display_order ASC`); err != nil {
		return nil, err
	}
	for i := range out {
		opts, err := r.ListOptions(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Options = opts
	}
	return out, nil
}

func (r *AttributeRepo) Get(id string) (domain.Attribute, error) {
	var a domain.Attribute
	if err := r.db.Get(&a, `
  SELECT id, name, type, required, display_order FROM attributes WHERE id=?`, id); err != nil {
		return a, err
	}
	opts, err := r.ListOptions(id)
	if err != nil {
		return a, err
	}
	a.Options = opts
	return a, nil
}

func (r *AttributeRepo) Insert(a domain.Attribute) error {
	_, err := r.db.Exec(`
  INSERT INTO attributes(id,name,type,required,display_order) VALUES(?,?,?,?,?)`,
		a.ID, a.Name, a.Type, a.Required, a.DisplayOrder)
	return err
}

func (r *AttributeRepo) Update(a domain.Attribute) error {
	res, err := r.db.Exec(`
  UPDATE attributes SET name=?, type=?, required=?, display_order=? WHERE id=?`,
		a.Name, a.Type, a.Required, a.DisplayOrder, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an attribute; its options and product bindings cascade.
func (r *AttributeRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM attributes WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AttributeRepo) ListOptions(attributeID string) ([]domain.AttributeOption, error) {
	var out []domain.AttributeOption
	err := r.db.Select(&out, `
  SELECT id, attribute_id, value, display_order
  FROM attribute_options WHERE attribute_id=? ORDER BY display_order ASC`, attributeID)
	return out, err
}

func (r *AttributeRepo) InsertOption(o domain.AttributeOption) error {
	_, err := r.db.Exec(`
  INSERT INTO attribute_options(id,attribute_id,value,display_order) VALUES(?,?,?,?)`,
		o.ID, o.AttributeID, o.Value, o.DisplayOrder)
	return err
}

func (r *AttributeRepo) UpdateOption(o domain.AttributeOption) error {
	res, err := r.db.Exec(`
  UPDATE attribute_options SET value=?, display_order=? WHERE id=? AND attribute_id=?`,
		o.Value, o.DisplayOrder, o.ID, o.AttributeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AttributeRepo) DeleteOption(attributeID, optionID string) error {
	res, err := r.db.Exec(`DELETE FROM attribute_options WHERE id=? AND attribute_id=?`, optionID, attributeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Bindings for a product.

func (r *AttributeRepo) ListByProduct(productID string) ([]domain.ProductAttr, error) {
	var out []domain.ProductAttr
	err := r.db.Select(&out, `
  SELECT id, product_id, attribute_id, value, COALESCE(option_id,'') AS option_id
  FROM product_attributes WHERE product_id=?`, productID)
	return out, err
}

// ReplaceBindings implements the wholesale delete-all + re-insert policy
// applied whenever an update payload carries attributes.
func (r *AttributeRepo) ReplaceBindings(productID string, attrs []domain.ProductAttr) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM product_attributes WHERE product_id=?`, productID); err != nil {
		return err
	}
	for _, a := range attrs {
		var opt any
		if a.OptionID != "" {
			opt = a.OptionID
		}
		if _, err := tx.Exec(`
  INSERT INTO product_attributes(id,product_id,attribute_id,value,option_id)
  VALUES(?,?,?,?,?)`, a.ID, productID, a.AttributeID, a.Value, opt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
