package vehicle

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/rideboard/site/cache"
	"github.com/rideboard/site/config"
	"github.com/rideboard/site/db"
)

// Category is the kind of vehicle a listing is for
type Category string

const (
	CategoryCar  Category = "car"
	CategoryBike Category = "bike"
)

// Categories lists every known category in display order
var Categories = []Category{CategoryCar, CategoryBike}

// ParseCategory maps user input onto a known category
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryCar:
		return CategoryCar, true
	case CategoryBike:
		return CategoryBike, true
	}
	return "", false
}

// DisplayName returns the label shown in the UI
func (c Category) DisplayName() string {
	switch c {
	case CategoryCar:
		return "Cars"
	case CategoryBike:
		return "Bikes"
	}
	return "All vehicles"
}

// Listing statuses
const (
	StatusActive   = "active"
	StatusSold     = "sold"
	StatusArchived = "archived"
)

// Vehicle is a single classified ad for a car or bike
type Vehicle struct {
	ID           string         `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Make         string         `json:"make" db:"make"`
	Model        string         `json:"model" db:"model"`
	Year         int            `json:"year" db:"year"`
	Price        int            `json:"price" db:"price"`
	Mileage      sql.NullInt64  `json:"mileage" db:"mileage"`
	Location     sql.NullString `json:"location" db:"location"`
	ImageURLs    string         `json:"-" db:"image_urls"`
	FuelType     sql.NullString `json:"fuel_type" db:"fuel_type"`
	Transmission sql.NullString `json:"transmission" db:"transmission"`
	Category     Category       `json:"vehicle_type" db:"vehicle_type"`
	SellerPhone  sql.NullString `json:"-" db:"seller_phone"`
	Status       string         `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	// Parsed version of ImageURLs, populated during scanning
	Images []string `json:"images"`
}

// PopulateImages parses the ImageURLs JSON array into Images
func (v *Vehicle) PopulateImages() {
	v.Images = nil
	if v.ImageURLs == "" {
		return
	}
	var images []string
	if err := json.Unmarshal([]byte(v.ImageURLs), &images); err == nil {
		v.Images = images
	}
}

// CoverImage returns the first image or "" when the vehicle has none
func (v Vehicle) CoverImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0]
}

// ErrNotFound is returned when no active vehicle has the requested id
var ErrNotFound = errors.New("vehicle not found")

var (
	// Cache for the active collection and lookups derived from it
	vehicleCache *cache.Cache[[]Vehicle]
)

// InitVehicleCache initializes the vehicle cache
func InitVehicleCache() error {
	var err error
	vehicleCache, err = cache.New[[]Vehicle](func(value []Vehicle) int64 {
		return int64(len(value) * 512)
	}, "Vehicle Cache", config.VehicleCacheTTL)
	if err != nil {
		return err
	}

	log.Printf("[vehicle-cache] Cache initialized successfully")
	return nil
}

// CacheStats reports vehicle cache statistics, or nil before InitVehicleCache
func CacheStats() map[string]interface{} {
	if vehicleCache == nil {
		return nil
	}
	return vehicleCache.Stats()
}

const selectColumns = `id, title, description, make, model, year, price, mileage, location,
	image_urls, fuel_type, transmission, vehicle_type, seller_phone, status, created_at`

const activeVehiclesKey = "vehicles:active"

// ListActive returns every active vehicle, newest first. A successful read
// is cached for config.VehicleCacheTTL; failures are never cached.
func ListActive(ctx context.Context) ([]Vehicle, error) {
	if vehicleCache == nil {
		return listActive(ctx)
	}
	// Concurrent misses share one query, so it must outlive the request
	// that happened to start it
	loadCtx := context.WithoutCancel(ctx)
	return vehicleCache.GetOrLoad(activeVehiclesKey, func() ([]Vehicle, error) {
		return listActive(loadCtx)
	})
}

func listActive(ctx context.Context) ([]Vehicle, error) {
	query := "SELECT " + selectColumns + " FROM Vehicle WHERE status = ? ORDER BY created_at DESC"
	rows, err := db.QueryContext(ctx, query, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	vehicles, err := scanVehicles(rows)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	return vehicles, nil
}

// Get returns a single active vehicle by id
func Get(ctx context.Context, id string) (Vehicle, error) {
	query := "SELECT " + selectColumns + " FROM Vehicle WHERE id = ? AND status = ?"
	rows, err := db.QueryContext(ctx, query, id, StatusActive)
	if err != nil {
		return Vehicle{}, fmt.Errorf("error loading vehicle %s: %w", id, err)
	}
	defer rows.Close()

	vehicles, err := scanVehicles(rows)
	if err != nil {
		return Vehicle{}, fmt.Errorf("error loading vehicle %s: %w", id, err)
	}
	if len(vehicles) == 0 {
		return Vehicle{}, ErrNotFound
	}
	return vehicles[0], nil
}

// GetByIDs returns active vehicles for ids, preserving the order of ids
func GetByIDs(ctx context.Context, ids []string) ([]Vehicle, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, StatusActive)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := "SELECT " + selectColumns + " FROM Vehicle WHERE status = ? AND id IN (" +
		strings.Join(placeholders, ",") + ")"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading vehicles: %w", err)
	}
	defer rows.Close()

	vehicles, err := scanVehicles(rows)
	if err != nil {
		return nil, fmt.Errorf("error loading vehicles: %w", err)
	}

	byID := make(map[string]Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	result := make([]Vehicle, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

// Insert stores a new vehicle using the given transaction
func Insert(ctx context.Context, tx *sql.Tx, v Vehicle) error {
	images, err := json.Marshal(v.Images)
	if err != nil {
		return fmt.Errorf("error encoding images: %w", err)
	}
	if v.Images == nil {
		images = []byte("[]")
	}
	status := v.Status
	if status == "" {
		status = StatusActive
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO Vehicle (id, title, description, make, model, year, price,
		mileage, location, image_urls, fuel_type, transmission, vehicle_type, seller_phone, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Description, v.Make, v.Model, v.Year, v.Price,
		v.Mileage, v.Location, string(images), v.FuelType, v.Transmission, string(v.Category),
		v.SellerPhone, status, v.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("error inserting vehicle %s: %w", v.ID, err)
	}
	return nil
}

func scanVehicles(rows *sql.Rows) ([]Vehicle, error) {
	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		var category, createdAt string
		err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Make, &v.Model, &v.Year, &v.Price,
			&v.Mileage, &v.Location, &v.ImageURLs, &v.FuelType, &v.Transmission, &category,
			&v.SellerPhone, &v.Status, &createdAt)
		if err != nil {
			return nil, err
		}
		v.Category = Category(category)
		v.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			log.Printf("[vehicle] Bad created_at %q for vehicle %s: %v", createdAt, v.ID, err)
		}
		v.PopulateImages()
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Makes returns the distinct makes in vehicles, sorted
func Makes(vehicles []Vehicle) []string {
	return distinct(vehicles, func(v Vehicle) (string, bool) {
		return v.Make, v.Make != ""
	})
}

// Models returns the distinct models offered by makeName, sorted.
// An empty makeName yields no models.
func Models(vehicles []Vehicle, makeName string) []string {
	if makeName == "" {
		return []string{}
	}
	return distinct(vehicles, func(v Vehicle) (string, bool) {
		return v.Model, v.Make == makeName && v.Model != ""
	})
}

// FuelTypes returns the distinct known fuel types, sorted
func FuelTypes(vehicles []Vehicle) []string {
	return distinct(vehicles, func(v Vehicle) (string, bool) {
		return v.FuelType.String, v.FuelType.Valid && v.FuelType.String != ""
	})
}

// Transmissions returns the distinct known transmissions, sorted
func Transmissions(vehicles []Vehicle) []string {
	return distinct(vehicles, func(v Vehicle) (string, bool) {
		return v.Transmission.String, v.Transmission.Valid && v.Transmission.String != ""
	})
}

// Locations returns the distinct known locations, sorted
func Locations(vehicles []Vehicle) []string {
	return distinct(vehicles, func(v Vehicle) (string, bool) {
		return v.Location.String, v.Location.Valid && v.Location.String != ""
	})
}

func distinct(vehicles []Vehicle, pick func(Vehicle) (string, bool)) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, v := range vehicles {
		value, ok := pick(v)
		if !ok || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
