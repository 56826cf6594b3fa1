package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-auth-portal/config"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
)

// Seeds a verified demo account plus one news item and one service.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (email, name, password_hash, is_verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, is_verified = TRUE,
		    verification_code = NULL, verification_expires_at = NULL, updated_at = now()
		RETURNING id
	`, email, name, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	fmt.Printf("seeded account: id=%s email=%s name=%s password=%s\n", id, email, name, password)

	var newsCount int
	if err := db.QueryRow(`SELECT count(*) FROM news`).Scan(&newsCount); err != nil {
		log.Fatalf("failed to count news: %v", err)
	}
	if newsCount == 0 {
		if _, err := db.Exec(`
			INSERT INTO news (title, description, author, category)
			VALUES ('Welcome', 'The portal is live.', $1, 'announcements')
		`, name); err != nil {
			log.Fatalf("failed to seed news: %v", err)
		}
		fmt.Println("seeded one news item")
	}

	var serviceCount int
	if err := db.QueryRow(`SELECT count(*) FROM services`).Scan(&serviceCount); err != nil {
		log.Fatalf("failed to count services: %v", err)
	}
	if serviceCount == 0 {
		if _, err := db.Exec(`
			INSERT INTO services (name, description, communication_rate)
			VALUES ('Consulting', 'Architecture reviews and audits.', 0)
		`); err != nil {
			log.Fatalf("failed to seed service: %v", err)
		}
		fmt.Println("seeded one service")
	}
}
