package services

import (
	"context"
	"errors"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/storage"

	"github.com/google/uuid"
)

var ErrNoImages = errors.New("at least one image required")

// ProductInput is the payload for create and update. Images may arrive as
// tagged refs or bare URL strings (see storage.ImageRef). A nil
// Attributes slice leaves existing bindings untouched.
type ProductInput struct {
	Title        string            `json:"title" validate:"required,max=200"`
	Description  string            `json:"description" validate:"max=5000"`
	Price        int64             `json:"price" validate:"gte=0"`
	Condition    string            `json:"condition" validate:"max=100"`
	Measurements string            `json:"measurements" validate:"max=500"`
	Delivered    bool              `json:"delivered"`
	Paid         bool              `json:"paid"`
	StatusID     string            `json:"statusId"`
	Images       storage.ImageList `json:"images"`
	Attributes   *[]AttrInput      `json:"attributes"`
}

type AttrInput struct {
	AttributeID string `json:"attributeId" validate:"required"`
	Value       string `json:"value"`
	OptionID    string `json:"optionId"`
}

type ProductService struct {
	Products *repos.ProductRepo
	Images   *repos.ImageRepo
	Statuses *repos.StatusRepo
	Attrs    *repos.AttributeRepo
	Media    *ImageService
}

// Create inserts a new product. Images start from zero: display order
// follows submission order and the first image is main.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (domain.Product, []CommitResult, error) {
	if len(in.Images) == 0 {
		return domain.Product{}, nil, ErrNoImages
	}

	statusID := in.StatusID
	if statusID == "" {
		def, err := s.Statuses.Default()
		if err != nil {
			return domain.Product{}, nil, err
		}
		statusID = def.ID
	} else if _, err := s.Statuses.Get(statusID); err != nil {
		return domain.Product{}, nil, err
	}

	p := domain.Product{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Condition:    in.Condition,
		Measurements: in.Measurements,
		Delivered:    in.Delivered,
		Paid:         in.Paid,
		StatusID:     statusID,
	}

	results := s.Media.Commit(ctx, p.ID, in.Images)

	if err := s.Products.Insert(p); err != nil {
		return domain.Product{}, nil, err
	}
	for i, res := range results {
		img := domain.ProductImage{
			ID:           uuid.NewString(),
			ProductID:    p.ID,
			URL:          res.URL,
			IsMain:       i == 0,
			DisplayOrder: i,
		}
		if err := s.Images.Insert(img); err != nil {
			return domain.Product{}, nil, err
		}
	}
	if in.Attributes != nil {
		if err := s.replaceAttrs(p.ID, *in.Attributes); err != nil {
			return domain.Product{}, nil, err
		}
	}
	out, err := s.load(p.ID)
	return out, results, err
}

// Update upserts the product row and reconciles its images against the
// submitted set: rows whose URL left the set are deleted, new URLs are
// appended after the current max display order, and untouched rows are
// never reordered.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (domain.Product, []CommitResult, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return domain.Product{}, nil, err
	}

	statusID := in.StatusID
	if statusID == "" {
		statusID = p.StatusID
	} else if _, err := s.Statuses.Get(statusID); err != nil {
		return domain.Product{}, nil, err
	}

	results := s.Media.Commit(ctx, id, in.Images)
	if err := s.reconcileImages(id, results); err != nil {
		return domain.Product{}, nil, err
	}

	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Condition = in.Condition
	p.Measurements = in.Measurements
	p.Delivered = in.Delivered
	p.Paid = in.Paid
	p.StatusID = statusID
	if err := s.Products.Update(p); err != nil {
		return domain.Product{}, nil, err
	}

	if in.Attributes != nil {
		if err := s.replaceAttrs(id, *in.Attributes); err != nil {
			return domain.Product{}, nil, err
		}
	}
	out, err := s.load(id)
	return out, results, err
}

// reconcileImages diffs the desired URL set against persisted rows.
// Matching is by URL; asset ids are random so collisions are not a
// practical concern.
func (s *ProductService) reconcileImages(productID string, results []CommitResult) error {
	existing, err := s.Images.ListByProduct(productID)
	if err != nil {
		return err
	}

	desired := make(map[string]bool, len(results))
	for _, r := range results {
		desired[r.URL] = true
	}
	current := make(map[string]bool, len(existing))
	maxOrder := -1
	for _, img := range existing {
		current[img.URL] = true
		if img.DisplayOrder > maxOrder {
			maxOrder = img.DisplayOrder
		}
	}

	for _, img := range existing {
		if !desired[img.URL] {
			if err := s.Images.Delete(img.ID); err != nil {
				return err
			}
		}
	}

	// The first inserted row becomes main only when the product had no
	// images at all.
	first := len(existing) == 0
	for _, r := range results {
		if current[r.URL] {
			continue
		}
		maxOrder++
		img := domain.ProductImage{
			ID:           uuid.NewString(),
			ProductID:    productID,
			URL:          r.URL,
			IsMain:       first,
			DisplayOrder: maxOrder,
		}
		first = false
		if err := s.Images.Insert(img); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductService) replaceAttrs(productID string, attrs []AttrInput) error {
	rows := make([]domain.ProductAttr, 0, len(attrs))
	for _, a := range attrs {
		rows = append(rows, domain.ProductAttr{
			ID:          uuid.NewString(),
			ProductID:   productID,
			AttributeID: a.AttributeID,
			Value:       a.Value,
			OptionID:    a.OptionID,
		})
	}
	return s.Attrs.ReplaceBindings(productID, rows)
}

// Delete removes the product row (images and bindings cascade) and then
// best-effort clears the product's storage folder.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Products.Delete(id); err != nil {
		return err
	}
	s.Media.DeleteProductObjects(ctx, id)
	return nil
}

func (s *ProductService) Get(id string) (domain.Product, error) {
	return s.load(id)
}

// ListAll returns every product with images attached, for the admin view.
func (s *ProductService) ListAll() ([]domain.Product, error) {
	ps, err := s.Products.List()
	if err != nil {
		return nil, err
	}
	return s.attach(ps)
}

// ListAvailable returns only available products; the storefront never
// sees anything else regardless of filters.
func (s *ProductService) ListAvailable() ([]domain.Product, error) {
	ps, err := s.Products.ListByStatusName(domain.StatusAvailable)
	if err != nil {
		return nil, err
	}
	return s.attach(ps)
}

func (s *ProductService) attach(ps []domain.Product) ([]domain.Product, error) {
	for i := range ps {
		imgs, err := s.Images.ListByProduct(ps[i].ID)
		if err != nil {
			return nil, err
		}
		ps[i].Images = imgs
	}
	return ps, nil
}

func (s *ProductService) load(id string) (domain.Product, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	if st, err := s.Statuses.Get(p.StatusID); err == nil {
		p.Status = &st
	}
	imgs, err := s.Images.ListByProduct(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Images = imgs
	attrs, err := s.Attrs.ListByProduct(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Attrs = attrs
	return p, nil
}
