package main

import (
	"fmt"
	"log"

	"grestaurants/configs"
	"grestaurants/routes"
	"grestaurants/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatal(err)
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// live review feed
	hub := ws.NewReviewHub()
	go hub.Run()
	defer hub.Stop()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
