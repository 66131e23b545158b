// Bootstrap tool: promote an existing account to ADMIN. Needed once per
// deployment, before any admin exists to provision others.
//
//	DATABASE_URL=... go run ./cmd/promote_admin user@example.com
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/myth3x/mythex-snapshare/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <email>", os.Args[0])
	}
	email := os.Args[1]

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("User with email %s not found: %v", email, err)
	}

	user.Role = models.RoleAdmin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user role: %v", err)
	}

	fmt.Printf("Successfully promoted %s (%s) to ADMIN.\n", user.Username, user.Email)
}
