package seeder

import (
	"context"
	"log"
	"time"

	"dayflow/models"
	"dayflow/pkg/password"
	"dayflow/repository"
)

type seedUser struct {
	name       string
	email      string
	role       string
	position   string
	department string
	phone      string
	joinDate   string
}

var seedUsers = []seedUser{
	{"Admin", "admin@dayflow.io", "admin", "System Administrator", "IT", "", "2023-01-01"},
	{"John Smith", "john.smith@dayflow.io", "employee", "Software Engineer", "Engineering", "+1-555-0101", "2023-01-15"},
	{"Sarah Johnson", "sarah.johnson@dayflow.io", "employee", "Product Manager", "Product", "+1-555-0102", "2023-02-20"},
	{"Michael Chen", "michael.chen@dayflow.io", "employee", "UX Designer", "Design", "+1-555-0103", "2023-03-10"},
	{"Emily Davis", "emily.davis@dayflow.io", "employee", "Marketing Specialist", "Marketing", "+1-555-0104", "2023-04-05"},
	{"David Wilson", "david.wilson@dayflow.io", "employee", "Sales Representative", "Sales", "+1-555-0105", "2023-05-12"},
	{"Lisa Anderson", "lisa.anderson@dayflow.io", "employee", "HR Coordinator", "Human Resources", "+1-555-0106", "2023-06-18"},
}

// SeedUsers inserts the demo accounts, skipping any email that already
// exists, so restarting the server never duplicates them.
func SeedUsers(userRepo *repository.UserRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for _, seed := range seedUsers {
		existing, err := userRepo.FindUserByEmail(ctx, seed.email)
		if err != nil {
			log.Printf("Seeder: failed to check %s: %v", seed.email, err)
			continue
		}
		if existing != nil {
			continue
		}

		hashed, err := password.HashPassword("Password123")
		if err != nil {
			log.Printf("Seeder: failed to hash password for %s: %v", seed.email, err)
			continue
		}

		user := &models.User{
			Name:       seed.name,
			Email:      seed.email,
			Password:   hashed,
			Role:       seed.role,
			Position:   seed.position,
			Department: seed.department,
			Phone:      seed.phone,
			JoinDate:   seed.joinDate,
			Status:     "active",
		}

		if _, err := userRepo.CreateUser(ctx, user); err != nil {
			log.Printf("Seeder: failed to create %s: %v", seed.email, err)
			continue
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("Seeder: created %d demo account(s), default password Password123", seeded)
	}
}
