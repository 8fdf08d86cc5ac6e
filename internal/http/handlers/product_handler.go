package handlers

import (
	"strings"

	"tienda/internal/catalog"
	"tienda/internal/domain"
	applog "tienda/internal/log"
	"tienda/internal/repos"
	"tienda/internal/services"
	"tienda/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
	Statuses *repos.StatusRepo
}

// triState parses delivered/paid filter params; empty or unknown
// values mean "no filter".
func triState(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		v := true
		return &v
	case "false", "0", "no":
		v := false
		return &v
	}
	return nil
}

func (h *ProductHandler) statusNameFn() (func(id string) string, error) {
	sts, err := h.Statuses.ListActive()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(sts))
	for _, st := range sts {
		names[st.ID] = st.Name
	}
	return func(id string) string { return names[id] }, nil
}

func (h *ProductHandler) list(c *fiber.Ctx, products []domain.Product, f catalog.Filters, pageSize int) error {
	nameOf, err := h.statusNameFn()
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	filtered := catalog.Apply(products, f, nameOf)
	items, page, pages := catalog.Paginate(filtered, c.QueryInt("page", 1), pageSize)
	return c.JSON(fiber.Map{
		"items": items,
		"page":  page,
		"pages": pages,
		"total": len(filtered),
	})
}

// ListPublic serves the storefront. Only available products are fetched,
// and the status predicate is forced to available again on top of that;
// a client-supplied status param is ignored.
func (h *ProductHandler) ListPublic(c *fiber.Ctx) error {
	products, err := h.Products.ListAvailable()
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	avail, err := h.Statuses.GetByName(domain.StatusAvailable)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	f := catalog.Filters{
		StatusID:  avail.ID,
		Delivered: triState(c.Query("delivered")),
		Paid:      triState(c.Query("paid")),
		Query:     c.Query("q"),
	}
	return h.list(c, products, f, catalog.PublicPageSize)
}

// ListAdmin serves the back-office table across all statuses.
func (h *ProductHandler) ListAdmin(c *fiber.Ctx) error {
	products, err := h.Products.ListAll()
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	f := catalog.Filters{
		StatusID:  c.Query("status"),
		Delivered: triState(c.Query("delivered")),
		Paid:      triState(c.Query("paid")),
		Query:     c.Query("q"),
	}
	return h.list(c, products, f, catalog.AdminPageSize)
}

// Detail is public: anything not available reads as missing.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c)
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return notFound(c)
	}
	if p.Status == nil || p.Status.Name != domain.StatusAvailable {
		return notFound(c)
	}
	return c.JSON(p)
}

// DetailAdmin returns any product regardless of status.
func (h *ProductHandler) DetailAdmin(c *fiber.Ctx) error {
	p, err := h.Products.Get(c.Params("id"))
	if err != nil {
		return notFound(c)
	}
	return c.JSON(p)
}

// warnings surfaces staged images that could not be migrated; the save
// succeeded anyway.
func warnings(results []services.CommitResult) []fiber.Map {
	var out []fiber.Map
	for _, r := range results {
		if r.Outcome == services.KeptTemporary {
			out = append(out, fiber.Map{"url": r.URL, "reason": r.Reason.Error()})
		}
	}
	return out
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(in); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}

	p, results, err := h.Products.Create(c.Context(), in)
	if err == services.ErrNoImages {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	resp := fiber.Map{"product": p}
	if w := warnings(results); w != nil {
		resp["imageWarnings"] = w
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(in); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}

	p, results, err := h.Products.Update(c.Context(), id, in)
	if repos.NotFound(err) {
		return notFound(c)
	}
	if err != nil {
		applog.Error(c, "products.update.fail", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	resp := fiber.Map{"product": p}
	if w := warnings(results); w != nil {
		resp["imageWarnings"] = w
	}
	return c.JSON(resp)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.Products.Delete(c.Context(), id)
	if repos.NotFound(err) {
		return notFound(c)
	}
	if err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
