package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/khankhulgun/mapstyle"
	"github.com/khankhulgun/mapstyle/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	var db *gorm.DB
	if cfg.HasDatabase() {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	} else {
		log.Println("MAPSTYLE_DATABASE_DSN not set, stored styles are disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:     "mapstyle",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	svc, err := mapstyle.Set(app, cfg, db)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer svc.Close()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown failed: %v", err)
		}
	}()

	if err := app.Listen(cfg.Listen); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
