package handlers

import (
	"tienda/internal/config"
	"tienda/internal/repos"
	"tienda/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler   *ProductHandler
	UploadHandler    *UploadHandler
	StatusHandler    *StatusHandler
	AttributeHandler *AttributeHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, media *services.ImageService, uploads *services.UploadService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	imgRepo := repos.NewImageRepo(db)
	statusRepo := repos.NewStatusRepo(db)
	attrRepo := repos.NewAttributeRepo(db)

	prodSvc := &services.ProductService{
		Products: prodRepo,
		Images:   imgRepo,
		Statuses: statusRepo,
		Attrs:    attrRepo,
		Media:    media,
	}

	return &Deps{
		ProductHandler:   &ProductHandler{Products: prodSvc, Statuses: statusRepo},
		UploadHandler:    &UploadHandler{Uploads: uploads},
		StatusHandler:    &StatusHandler{Statuses: statusRepo},
		AttributeHandler: &AttributeHandler{Attrs: attrRepo},
	}
}
