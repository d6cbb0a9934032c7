package main

import (
	"log"
	"net/http"

	"github.com/bannerworks/signquote/internal/catalog"
	"github.com/bannerworks/signquote/internal/config"
	"github.com/bannerworks/signquote/internal/db"
	"github.com/bannerworks/signquote/internal/migrations"
	"github.com/bannerworks/signquote/internal/seed"
)

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
		stats, err := seed.Run(database)
		if err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
		if stats.Inserts > 0 {
			log.Printf("seeded %d default catalog rows", stats.Inserts)
		}
	}

	srv := newServer(catalog.New(database))

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
