package storage

import (
	"context"
	"database/sql"
	"time"
)

// Favorite is a station pinned by the user.
type Favorite struct {
	GlobalID string
	Name     string
	Lat      float64
	Lon      float64
	AddedAt  time.Time
}

// AddFavorite pins a station. Re-pinning an existing station updates
// its name and coordinates but keeps its original position.
func (db *DB) AddFavorite(ctx context.Context, f Favorite) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO favorites (global_id, name, lat, lon, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (global_id) DO UPDATE SET name = excluded.name, lat = excluded.lat, lon = excluded.lon`,
		f.GlobalID, f.Name, f.Lat, f.Lon, time.Now().Unix())
	return err
}

// RemoveFavorite unpins a station. Removing an unknown id is a no-op.
func (db *DB) RemoveFavorite(ctx context.Context, globalID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE global_id = ?`, globalID)
	return err
}

// Favorites returns all pinned stations, oldest first.
func (db *DB) Favorites(ctx context.Context) ([]Favorite, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT global_id, name, lat, lon, added_at
		FROM favorites
		ORDER BY added_at, global_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		var addedAt int64
		if err := rows.Scan(&f.GlobalID, &f.Name, &f.Lat, &f.Lon, &addedAt); err != nil {
			return nil, err
		}
		f.AddedAt = time.Unix(addedAt, 0)
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// IsFavorite reports whether a station is pinned.
func (db *DB) IsFavorite(ctx context.Context, globalID string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM favorites WHERE global_id = ?`, globalID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
