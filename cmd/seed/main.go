package main

import (
	"log"
	"os"

	"github.com/neighborly/forum/internal/config"
	"github.com/neighborly/forum/internal/database"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/internal/utils"
)

// Seeds the bootstrap admin account. Without at least one admin nobody
// can be approved and resident-to-admin messaging has no recipient.
func main() {
	cfg := config.Load()

	database.Connect(cfg)
	database.Migrate()

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD environment variable is required")
	}

	users := repository.NewUserRepository(database.DB)

	existing, err := users.GetByUsername(username)
	if err != nil {
		log.Fatalf("Failed to look up admin user: %v", err)
	}
	if existing != nil {
		log.Printf("Admin user %q already exists (id=%d), nothing to do", username, existing.ID)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     "Administrator",
		IsAdmin:      true,
		IsApproved:   true,
	}
	if err := users.Create(admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Created admin user %q (id=%d)", username, admin.ID)
}
