package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type seedCourier struct {
	CourierID int64  `json:"courier_id"`
	FullName  string `json:"full_name"`
	Active    bool   `json:"active"`
}

type seedOrder struct {
	OrderID      int64    `json:"order_id"`
	AddressLabel string   `json:"address_label"`
	DestLat      *float64 `json:"dest_lat"`
	DestLng      *float64 `json:"dest_lng"`
	CourierID    *int64   `json:"courier_id"`
}

type seedFile struct {
	Couriers []seedCourier `json:"couriers"`
	Orders   []seedOrder   `json:"orders"`
}

// SeedFromJSON loads demo couriers and orders for local runs.
// Existing rows with the same ids are left untouched.
func SeedFromJSON(db *sql.DB, path string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed: parse %q: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range data.Couriers {
		if _, err := tx.Exec(`
		INSERT INTO couriers (courier_id, full_name, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (courier_id) DO NOTHING;
		`, c.CourierID, c.FullName, c.Active); err != nil {
			return fmt.Errorf("seed: insert courier %d: %w", c.CourierID, err)
		}
	}

	for _, o := range data.Orders {
		if _, err := tx.Exec(`
		INSERT INTO orders (order_id, address_label, dest_lat, dest_lng, courier_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING;
		`, o.OrderID, o.AddressLabel, o.DestLat, o.DestLng, o.CourierID); err != nil {
			return fmt.Errorf("seed: insert order %d: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	return nil
}
