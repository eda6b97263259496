package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/db"
	"github.com/rideboard/site/vehicle"
)

// seedVehicle is one entry of the seed file
type seedVehicle struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int      `json:"price"`
	Mileage      *int64   `json:"mileage"`
	Location     string   `json:"location"`
	Images       []string `json:"images"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission"`
	VehicleType  string   `json:"vehicle_type"`
	SellerPhone  string   `json:"seller_phone"`
	CreatedAt    string   `json:"created_at"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// toVehicle validates an entry and fills in a fresh id and timestamp when absent
func (s seedVehicle) toVehicle(now time.Time) (vehicle.Vehicle, error) {
	category, ok := vehicle.ParseCategory(s.VehicleType)
	if !ok {
		return vehicle.Vehicle{}, fmt.Errorf("%q: unknown vehicle_type %q", s.Title, s.VehicleType)
	}
	if s.Title == "" || s.Make == "" || s.Model == "" {
		return vehicle.Vehicle{}, fmt.Errorf("%q: title, make and model are required", s.Title)
	}
	if s.Year <= 0 || s.Price < 0 {
		return vehicle.Vehicle{}, fmt.Errorf("%q: year and price must be positive", s.Title)
	}

	v := vehicle.Vehicle{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Make:         s.Make,
		Model:        s.Model,
		Year:         s.Year,
		Price:        s.Price,
		Location:     nullString(s.Location),
		Images:       s.Images,
		FuelType:     nullString(s.FuelType),
		Transmission: nullString(s.Transmission),
		Category:     category,
		SellerPhone:  nullString(s.SellerPhone),
		Status:       vehicle.StatusActive,
		CreatedAt:    now,
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if s.Mileage != nil {
		v.Mileage = sql.NullInt64{Int64: *s.Mileage, Valid: true}
	}
	if s.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, s.CreatedAt)
		if err != nil {
			return vehicle.Vehicle{}, fmt.Errorf("%q: bad created_at: %w", s.Title, err)
		}
		v.CreatedAt = t
	}
	return v, nil
}

func readSeed(r io.Reader, now time.Time) ([]vehicle.Vehicle, error) {
	var entries []seedVehicle
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("error decoding seed file: %w", err)
	}
	vehicles := make([]vehicle.Vehicle, 0, len(entries))
	for i, e := range entries {
		v, err := e.toVehicle(now)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func main() {
	var (
		input  = flag.String("input", "vehicles.json", "JSON file with the vehicles to insert")
		dbURL  = flag.String("db", "", "Database URL (default: DATABASE_URL or config default)")
		dryRun = flag.Bool("dry-run", false, "Validate the file without writing")
	)
	flag.Parse()

	config.Load()
	if *dbURL != "" {
		config.DatabaseURL = *dbURL
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *input, err)
	}
	defer f.Close()

	vehicles, err := readSeed(f, time.Now().UTC())
	if err != nil {
		log.Fatalf("Invalid seed file: %v", err)
	}
	if *dryRun {
		fmt.Printf("%d vehicles OK\n", len(vehicles))
		return
	}

	if err := db.Init(config.DatabaseURL); err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	for _, v := range vehicles {
		if err := vehicle.Insert(ctx, tx, v); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	fmt.Printf("Inserted %d vehicles into %s\n", len(vehicles), config.DatabaseURL)
}
