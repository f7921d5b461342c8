package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/user-management-api/config"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	name := getenv("SEED_ADMIN_NAME", "Admin")
	email := getenv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := getenv("SEED_ADMIN_PASSWORD", "Admin123")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, 'admin', TRUE)
		ON CONFLICT (email) DO UPDATE SET role = 'admin', is_active = TRUE
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)
}
