package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"tienda/internal/config"
	"tienda/internal/http/handlers"
	"tienda/internal/repos"
	"tienda/internal/services"
	"tienda/internal/storage"
)

const (
	testAdminEmail    = "admin@tienda.test"
	testAdminPassword = "Passw0rd!"
)

type testEnv struct {
	app *fiber.App
	db  *sqlx.DB
	mem *storage.Memory
}

// newTestApp wires the real handlers against an in-memory database and
// object store, mirroring the production route table.
func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.EnsureAdmin(db, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	mem := storage.NewMemory("http://s", "tienda")
	media := &services.ImageService{Store: mem}
	uploads := &services.UploadService{Store: mem, MaxBytes: 5 << 20}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, SessionTTL: 7 * 24 * time.Hour}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 32 << 20
	app.Use(requestid.New())

	requireAdmin := handlers.RequireAdmin(authSvc)
	deps := handlers.NewDeps(db, config.Config{}, media, uploads)

	app.Get("/products", deps.ProductHandler.ListPublic)
	app.Get("/products/:id", deps.ProductHandler.Detail)
	app.Get("/product-statuses", deps.StatusHandler.List)

	app.Post("/products", requireAdmin, deps.ProductHandler.Create)
	app.Put("/products/:id", requireAdmin, deps.ProductHandler.Update)
	app.Delete("/products/:id", requireAdmin, deps.ProductHandler.Delete)

	app.Post("/upload", requireAdmin, deps.UploadHandler.Stage)
	app.Delete("/upload", requireAdmin, deps.UploadHandler.Delete)

	app.Get("/attributes", deps.AttributeHandler.List)
	app.Post("/attributes", requireAdmin, deps.AttributeHandler.Create)
	app.Put("/attributes/:id", requireAdmin, deps.AttributeHandler.Update)
	app.Delete("/attributes/:id", requireAdmin, deps.AttributeHandler.Delete)
	app.Post("/attributes/:id/options", requireAdmin, deps.AttributeHandler.CreateOption)
	app.Put("/attributes/:id/options/:optionId", requireAdmin, deps.AttributeHandler.UpdateOption)
	app.Delete("/attributes/:id/options/:optionId", requireAdmin, deps.AttributeHandler.DeleteOption)

	app.Post("/admin/login", authH.Login)
	app.Post("/admin/logout", authH.Logout)
	app.Post("/admin/change-password", requireAdmin, authH.ChangePassword)
	app.Get("/admin/products", requireAdmin, deps.ProductHandler.ListAdmin)
	app.Get("/admin/products/:id", requireAdmin, deps.ProductHandler.DetailAdmin)

	return &testEnv{app: app, db: db, mem: mem}
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
