package main

import (
	"log"
	"net/http"

	"bleff/internal/config"
	"bleff/internal/db"
	"bleff/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg.DatabaseURL, db.PoolSettings{
		MaxOpenConns:           cfg.DBMaxOpenConns,
		MaxIdleConns:           cfg.DBMaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.DBConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.DBConnMaxIdleTimeSeconds,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	srv := server.New(conn, cfg)
	addr := ":" + cfg.Port
	log.Printf("bleff server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
