package domain

// Product is a catalog entry. Price is whole pesos, no minor units.
type Product struct {
	ID           string `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Description  string `db:"description" json:"description"`
	Price        int64  `db:"price" json:"price"`
	Condition    string `db:"condition" json:"condition"`
	Measurements string `db:"measurements" json:"measurements"`
	Delivered    bool   `db:"delivered" json:"delivered"`
	Paid         bool   `db:"paid" json:"paid"`
	StatusID     string `db:"status_id" json:"statusId"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	UpdatedAt    string `db:"updated_at" json:"updatedAt"`

	Status *ProductStatus `db:"-" json:"status,omitempty"`
	Images []ProductImage `db:"-" json:"images,omitempty"`
	Attrs  []ProductAttr  `db:"-" json:"attributes,omitempty"`
}

// Well-known internal status names.
const (
	StatusPending   = "pending"
	StatusAvailable = "available"
	StatusSold      = "sold"
)

type ProductStatus struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"` // pending | available | sold
	DisplayName  string `db:"display_name" json:"displayName"`
	Color        string `db:"color" json:"color"`
	DisplayOrder int    `db:"display_order" json:"displayOrder"`
	Active       bool   `db:"active" json:"active"`
	IsDefault    bool   `db:"is_default" json:"isDefault"`
}

// ProductImage render order is display_order ascending; at most one row
// per product carries is_main.
type ProductImage struct {
	ID           string `db:"id" json:"id"`
	ProductID    string `db:"product_id" json:"productId"`
	URL          string `db:"url" json:"url"`
	IsMain       bool   `db:"is_main" json:"isMain"`
	DisplayOrder int    `db:"display_order" json:"displayOrder"`
}

// Attribute types.
const (
	AttrTypeText   = "TEXT"
	AttrTypeSelect = "SELECT"
)

type Attribute struct {
	ID           string            `db:"id" json:"id"`
	Name         string            `db:"name" json:"name"`
	Type         string            `db:"type" json:"type"` // TEXT | SELECT
	Required     bool              `db:"required" json:"required"`
	DisplayOrder int               `db:"display_order" json:"displayOrder"`
	Options      []AttributeOption `db:"-" json:"options,omitempty"`
}

type AttributeOption struct {
	ID           string `db:"id" json:"id"`
	AttributeID  string `db:"attribute_id" json:"attributeId"`
	Value        string `db:"value" json:"value"`
	DisplayOrder int    `db:"display_order" json:"displayOrder"`
}

// ProductAttr binds a product to an attribute with either a free-text
// value or a chosen option.
type ProductAttr struct {
	ID          string `db:"id" json:"id"`
	ProductID   string `db:"product_id" json:"productId"`
	AttributeID string `db:"attribute_id" json:"attributeId"`
	Value       string `db:"value" json:"value"`
	OptionID    string `db:"option_id" json:"optionId,omitempty"`
}
