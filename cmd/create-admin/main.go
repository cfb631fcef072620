package main

import (
	"flag"
	"fmt"
	"log"

	"party-package-store/internal/config"
	"party-package-store/internal/database"
	"party-package-store/internal/repositories"
	"party-package-store/internal/utils"
)

func main() {
	email := flag.String("email", "admin@example.com", "Admin email")
	password := flag.String("password", "", "Admin password (required)")
	name := flag.String("name", "Store Admin", "Admin full name")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
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
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db.DB)

	if existing, err := userRepo.GetByEmail(*email); err == nil {
		user, err := userRepo.SetAdmin(existing.ID, true)
		if err != nil {
			log.Fatal("Failed to promote user:", err)
		}
		fmt.Printf("Existing user %s promoted to admin (id %d)\n", user.Email, user.ID)
		return
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user, err := userRepo.Create(*email, hash, *name, "")
	if err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	if _, err := userRepo.SetAdmin(user.ID, true); err != nil {
		log.Fatal("Failed to set admin flag:", err)
	}

	fmt.Printf("Admin user created: %s (id %d)\n", user.Email, user.ID)
}
