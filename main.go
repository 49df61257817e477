package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"github.com/CherylPlj/HRMS-sub008/internals/configs"
	database "github.com/CherylPlj/HRMS-sub008/internals/databases"
	sisclient "github.com/CherylPlj/HRMS-sub008/internals/features/sync/client"
	"github.com/CherylPlj/HRMS-sub008/internals/features/sync/worker"
	middlewares "github.com/CherylPlj/HRMS-sub008/internals/middlewares"
	routes "github.com/CherylPlj/HRMS-sub008/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing + per-request timeout
	app.Use(middlewares.RequestContext())

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.EnsureSchedulingConstraints()

	// Outbox worker once DB is up. Without a SIS base URL the worker stays
	// off and pending rows simply wait.
	if configs.SISBaseURL != "" {
		sis := sisclient.NewSISClient(configs.SISBaseURL, configs.HRMSAPIKey, configs.SyncSharedSecret)
		worker.StartSyncOutboxWorker(database.DB, sis)
	} else {
		log.Println("⚠️ SIS_BASE_URL empty, outbox worker not started")
	}

	// Health check (anti-cold start)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
