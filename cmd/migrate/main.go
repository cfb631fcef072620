package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"party-package-store/internal/config"
	"party-package-store/internal/database"
)

func main() {
	upFlag := flag.Bool("up", false, "Run pending migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if !*upFlag {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/migrate/main.go -up   # Run pending migrations")
		os.Exit(1)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Println("All migrations completed successfully!")
}
