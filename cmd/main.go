package main

import (
	"log"

	"github.com/sanskarrz/Meal-Tracker/config"
	"github.com/sanskarrz/Meal-Tracker/routes"
)

func main() {
	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	r := routes.SetupRouter(cfg, db)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
