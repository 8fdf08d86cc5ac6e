package handlers

import (
	"tienda/internal/domain"
	applog "tienda/internal/log"
	"tienda/internal/repos"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttributeHandler struct {
	Attrs *repos.AttributeRepo
}

type attributeReq struct {
	Name         string `json:"name" validate:"required,max=100"`
	Type         string `json:"type" validate:"required,oneof=TEXT SELECT"`
	Required     bool   `json:"required"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

type optionReq struct {
	Value        string `json:"value" validate:"required,max=200"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

func (h *AttributeHandler) List(c *fiber.Ctx) error {
	attrs, err := h.Attrs.List()
	if err != nil {
		applog.Error(c, "attributes.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"attributes": attrs})
}

func (h *AttributeHandler) Create(c *fiber.Ctx) error {
	var req attributeReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	a := domain.Attribute{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Type:         req.Type,
		Required:     req.Required,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.Attrs.Insert(a); err != nil {
		applog.Error(c, "attributes.create.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "attributes.create", map[string]any{"attribute_id": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AttributeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var req attributeReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	a := domain.Attribute{
		ID:           id,
		Name:         req.Name,
		Type:         req.Type,
		Required:     req.Required,
		DisplayOrder: req.DisplayOrder,
	}
	err := h.Attrs.Update(a)
	if repos.NotFound(err) {
		return notFound(c)
	}
	if err != nil {
		applog.Error(c, "attributes.update.fail", err, map[string]any{"attribute_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "attributes.update", map[string]any{"attribute_id": id})
	return c.JSON(a)
}

func (h *AttributeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.Attrs.Delete(id)
	if repos.NotFound(err) {
		return notFound(c)
	}
	if err != nil {
		applog.Error(c, "attributes.delete.fail", err, map[string]any{"attribute_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "attributes.delete", map[string]any{"attribute_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AttributeHandler) CreateOption(c *fiber.Ctx) error {
	attrID := c.Params("id")
	if _, err := h.Attrs.Get(attrID); err != nil {
		return notFound(c)
	}
	var req optionReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	o := domain.AttributeOption{
		ID:           uuid.NewString(),
		AttributeID:  attrID,
		Value:        req.Value,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.Attrs.InsertOption(o); err != nil {
		applog.Error(c, "attributes.option.create.fail", err, map[string]any{"attribute_id": attrID})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "attributes.option.create", map[string]any{"option_id": o.ID})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *AttributeHandler) UpdateOption(c *fiber.Ctx) error {
	attrID, optID := c.Params("id"), c.Params("optionId")
	var req optionReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	}
	o := domain.AttributeOption{
		ID:           optID,
		AttributeID:  attrID,
		Value:        req.Value,
		DisplayOrder: req.DisplayOrder,
	}
	err := h.Attrs.UpdateOption(o)
	if repos.NotFound(err) {
		return notFound(c)
	}
	if err != nil {
		applog.Error(c, "attributes.option.update.fail", err, map[string]any{"option_id": optID})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "attributes.option.update", map[string]any{"option_id": optID})
	return c.JSON(o)
}

func (h *AttributeHandler) DeleteOption(c *fiber.Ctx) error {
	attrID, optID := c.Params("id"), c.Params("optionId")
	err := h.Attrs.DeleteOption(attrID, optID)
	if repos.NotFound(err) {
		return notFound(c)
	}
	if err != nil {
		applog.Error(c, "attributes.option.delete.fail", err, map[string]any{"option_id": optID})
		return jsonErr(c, fiber.StatusInternalServerError, "internal error")
	}
	applog.Audit(c, "attributes.option.delete", map[string]any{"option_id": optID})
	return c.JSON(fiber.Map{"ok": true})
}
