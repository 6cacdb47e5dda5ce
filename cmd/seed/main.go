package main

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sportarea/internal/database"
	"sportarea/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "sportarea.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "sportarea123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	users := []domain.User{
		{
			Name:         "Facility Admin",
			Email:        "admin@sportarea.local",
			Phone:        "08123456789",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
		},
		{
			Name:         "Budi Santoso",
			Email:        "budi@example.com",
			Phone:        "0811111111",
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
		},
		{
			Name:         "Siti Aminah",
			Email:        "siti@example.com",
			Phone:        "0822222222",
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
		},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatal("seed user failed:", err)
		}
	}

	admin := users[0]

	log.Println("Creating bookings...")

	// next weekday, at least tomorrow
	date := time.Now().UTC().AddDate(0, 0, 1)
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	bookings := []domain.Booking{
		{
			UserID:    users[1].ID,
			FieldType: domain.FieldFutsal,
			Date:      date,
			TimeSlot:  "10:00 - 11:00",
			Status:    domain.BookingApproved,
			ApprovedBy: func() *int64 {
				id := admin.ID
				return &id
			}(),
		},
		{
			UserID:    users[2].ID,
			FieldType: domain.FieldBasket,
			Date:      date,
			TimeSlot:  "16:00 - 17:00",
			Status:    domain.BookingPending,
		},
	}
	for i := range bookings {
		if err := db.Create(&bookings[i]).Error; err != nil {
			log.Fatal("seed booking failed:", err)
		}
	}

	log.Printf("Seed completed: users=%d bookings=%d (password: %s)", len(users), len(bookings), password)
}
