package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/platewise/api/internal/config"
	"github.com/platewise/api/internal/enum"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// CLI flags
	slug := flag.String("slug", "", "Restaurant slug")
	restaurantName := flag.String("restaurant", "", "Restaurant name")
	timezone := flag.String("timezone", "", "Restaurant IANA timezone")
	email := flag.String("email", "", "Owner email address")
	password := flag.String("password", "", "Owner password")
	name := flag.String("name", "", "Owner full name")
	withMenu := flag.Bool("demo-menu", false, "Also create a demo menu, tax and table")
	flag.Parse()

	// Fall back to environment variables, then defaults
	*slug = firstNonEmpty(*slug, os.Getenv("SEED_SLUG"), "demo-kitchen")
	*restaurantName = firstNonEmpty(*restaurantName, os.Getenv("SEED_RESTAURANT"), "Demo Kitchen")
	*timezone = firstNonEmpty(*timezone, os.Getenv("SEED_TIMEZONE"), "Asia/Kolkata")
	*email = strings.ToLower(firstNonEmpty(*email, os.Getenv("SEED_EMAIL"), "owner@platewise.local"))
	*name = firstNonEmpty(*name, os.Getenv("SEED_NAME"), "Demo Owner")
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}

	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Seed in a transaction: restaurant, settings and owner, or nothing.
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	restaurantID, created, err := seedRestaurant(ctx, tx, *slug, *restaurantName, *timezone)
	if err != nil {
		log.Fatalf("Failed to seed restaurant: %v", err)
	}

	userID, err := seedOwner(ctx, tx, restaurantID, *email, *password, *name)
	if err != nil {
		log.Fatalf("Failed to seed owner: %v", err)
	}

	if *withMenu && created {
		if err := seedDemoMenu(ctx, tx, restaurantID); err != nil {
			log.Fatalf("Failed to seed demo menu: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Restaurant ID: %s", restaurantID)
	log.Printf("Owner ID: %s", userID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// seedRestaurant creates the restaurant and its default settings row if the
// slug is not taken yet.
func seedRestaurant(ctx context.Context, tx pgx.Tx, slug, name, timezone string) (uuid.UUID, bool, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM restaurants WHERE slug = $1`, slug).Scan(&existingID)
	if err == nil {
		log.Printf("Restaurant '%s' already exists (ID: %s), skipping", slug, existingID)
		return existingID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("check restaurant: %w", err)
	}

	var newID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO restaurants (name, slug, timezone)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, slug, timezone).Scan(&newID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("insert restaurant: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO restaurant_settings (restaurant_id) VALUES ($1)`, newID); err != nil {
		return uuid.Nil, false, fmt.Errorf("insert settings: %w", err)
	}

	log.Printf("Created restaurant '%s' (ID: %s)", name, newID)
	return newID, true, nil
}

// seedOwner creates the owner account if the email is not registered yet.
func seedOwner(ctx context.Context, tx pgx.Tx, restaurantID uuid.UUID, email, password, fullName string) (uuid.UUID, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM staff_users WHERE email = $1`, email).Scan(&existingID)
	if err == nil {
		log.Printf("User '%s' already exists (ID: %s), skipping", email, existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("check user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	var newID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO staff_users (restaurant_id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, restaurantID, email, string(hashed), fullName, enum.StaffRoleOwner).Scan(&newID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}

	log.Printf("Created owner user '%s' (ID: %s)", email, newID)
	return newID, nil
}

// seedDemoMenu adds one menu with a variation and an add-on, a restaurant
// tax and a four-seat table, enough to place an order and a booking.
func seedDemoMenu(ctx context.Context, tx pgx.Tx, restaurantID uuid.UUID) error {
	var menuID, itemID uuid.UUID
	if err := tx.QueryRow(ctx,
		`INSERT INTO menus (restaurant_id, name, tax_rate) VALUES ($1, 'Mains', 0) RETURNING id`,
		restaurantID,
	).Scan(&menuID); err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	if err := tx.QueryRow(ctx,
		`INSERT INTO menu_items (menu_id, name, price) VALUES ($1, 'Chicken Biryani', 280) RETURNING id`,
		menuID,
	).Scan(&itemID); err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}

	stmts := []struct {
		what string
		sql  string
		args []any
	}{
		{"variation", `INSERT INTO menu_item_variations (menu_item_id, name, price_adjustment) VALUES ($1, 'Family Pack', 220)`, []any{itemID}},
		{"add-on", `INSERT INTO menu_item_addons (menu_item_id, name, price) VALUES ($1, 'Raita', 40)`, []any{itemID}},
		{"tax", `INSERT INTO restaurant_taxes (restaurant_id, name, rate) VALUES ($1, 'GST', 5)`, []any{restaurantID}},
		{"table", `INSERT INTO restaurant_tables (restaurant_id, name, capacity) VALUES ($1, 'T1', 4)`, []any{restaurantID}},
	}
	for _, s := range stmts {
		if _, err := tx.Exec(ctx, s.sql, s.args...); err != nil {
			return fmt.Errorf("insert %s: %w", s.what, err)
		}
	}

	log.Printf("Created demo menu (menu item ID: %s)", itemID)
	return nil
}
