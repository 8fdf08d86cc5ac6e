package handlers

import (
	"errors"

	applog "tienda/internal/log"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Uploads *services.UploadService
}

// Stage accepts multipart files and writes them into one fresh staging
// namespace. The product id field may be a real id or the literal "new";
// staging does not care, nothing touches the database here.
func (h *UploadHandler) Stage(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "multipart form required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		return jsonErr(c, fiber.StatusBadRequest, "no files in request")
	}

	batch := h.Uploads.NewBatch()
	refs := make([]any, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return jsonErr(c, fiber.StatusBadRequest, "unreadable file "+fh.Filename)
		}
		ref, err := h.Uploads.Stage(c.Context(), batch, f, fh.Size)
		_ = f.Close()
		switch {
		case errors.Is(err, services.ErrFileTooLarge), errors.Is(err, services.ErrBadMIME):
			return jsonErr(c, fiber.StatusBadRequest, fh.Filename+": "+err.Error())
		case err != nil:
			applog.Error(c, "upload.stage.fail", err, map[string]any{"file": fh.Filename})
			return jsonErr(c, fiber.StatusInternalServerError, "internal error")
		}
		refs = append(refs, ref)
	}

	applog.Audit(c, "upload.stage", map[string]any{"batch": batch, "count": len(refs)})
	return c.JSON(fiber.Map{"images": refs})
}

type deleteUploadReq struct {
	URL string `json:"url" validate:"required,url"`
}

// Delete removes a stored image directly by URL.
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	var req deleteUploadReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payload.Struct(req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "url required")
	}
	if err := h.Uploads.Delete(c.Context(), req.URL); err != nil {
		applog.Error(c, "upload.delete.fail", err, map[string]any{"url": req.URL})
		return jsonErr(c, fiber.StatusBadRequest, "could not delete image")
	}
	applog.Audit(c, "upload.delete", map[string]any{"url": req.URL})
	return c.JSON(fiber.Map{"ok": true})
}
