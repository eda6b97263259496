package vehicle

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rideboard/site/db"
)

// AddFavorite marks a vehicle as a favorite of the visitor
func AddFavorite(visitorID, vehicleID string) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO FavoriteVehicle (visitor_id, vehicle_id) VALUES (?, ?)`, visitorID, vehicleID)
	return err
}

// RemoveFavorite removes a favorite for a vehicle by a visitor
func RemoveFavorite(visitorID, vehicleID string) error {
	_, err := db.Exec(`DELETE FROM FavoriteVehicle WHERE visitor_id = ? AND vehicle_id = ?`, visitorID, vehicleID)
	return err
}

// IsFavorite checks if a visitor has favorited a vehicle
func IsFavorite(visitorID, vehicleID string) (bool, error) {
	row := db.QueryRow(`SELECT 1 FROM FavoriteVehicle WHERE visitor_id = ? AND vehicle_id = ?`, visitorID, vehicleID)
	var exists int
	err := row.Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// FavoriteIDs returns the vehicle ids favorited by the visitor, most recent first
func FavoriteIDs(ctx context.Context, visitorID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT vehicle_id FROM FavoriteVehicle WHERE visitor_id = ? ORDER BY favorited_at DESC`, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FavoriteSet returns the visitor's favorites as a lookup set
func FavoriteSet(ctx context.Context, visitorID string) map[string]bool {
	set := make(map[string]bool)
	if visitorID == "" {
		return set
	}
	ids, err := FavoriteIDs(ctx, visitorID)
	if err != nil {
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Favorites returns the visitor's favorited vehicles that are still active
func Favorites(ctx context.Context, visitorID string) ([]Vehicle, error) {
	ids, err := FavoriteIDs(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return GetByIDs(ctx, ids)
}
