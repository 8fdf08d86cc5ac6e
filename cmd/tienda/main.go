package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tienda/internal/config"
	"tienda/internal/http/handlers"
	applog "tienda/internal/log"
	"tienda/internal/repos"
	"tienda/internal/services"
	"tienda/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bucket, err := storage.OpenBucket(ctx, storage.BucketConfig{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
		PublicURL: cfg.StoragePublicURL,
	})
	if err != nil {
		log.Fatal(err)
	}

	media := &services.ImageService{Store: bucket}
	uploads := &services.UploadService{Store: bucket, MaxBytes: cfg.MaxUploadBytes}
	go media.RunSweeper(ctx, cfg.SweepInterval, cfg.SweepMaxAge)

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, SessionTTL: cfg.SessionTTL}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log the detail, never leak it
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Room for a full multi-file upload batch
	app.Server().MaxRequestBodySize = 32 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	requireAdmin := handlers.RequireAdmin(authSvc)
	deps := handlers.NewDeps(db, cfg, media, uploads)

	// ---------- Public catalog ----------
	catalogCache := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.CatalogCacheTTL > 0 {
		catalogCache = cache.New(cache.Config{
			Expiration: cfg.CatalogCacheTTL,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.OriginalURL()
			},
		})
	}
	app.Get("/products", catalogCache, deps.ProductHandler.ListPublic)
	app.Get("/products/:id", deps.ProductHandler.Detail)
	app.Get("/product-statuses", deps.StatusHandler.List)

	// ---------- Admin API ----------
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

	// ---------- Admin session ----------
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	app.Post("/admin/logout", authH.Logout)
	app.Post("/admin/change-password", requireAdmin, authH.ChangePassword)
	app.Get("/admin/products", requireAdmin, deps.ProductHandler.ListAdmin)
	app.Get("/admin/products/:id", requireAdmin, deps.ProductHandler.DetailAdmin)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
