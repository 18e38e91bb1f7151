package main

import (
	"flag"
	"log"

	"bleff/internal/config"
	"bleff/internal/db"
)

func main() {
	path := flag.String("file", "db/words.csv", "CSV word list: word,language,translation,definition")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg.DatabaseURL, db.PoolSettings{})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	loaded, err := db.LoadWordList(conn, *path)
	if err != nil {
		log.Fatalf("word list load failed: %v", err)
	}
	log.Printf("word list loaded file=%s meanings=%d", *path, loaded)
}
