package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-service/internal/domain"
)

// Postgres-backed implementation of the CourierRepository port.
type PostgresCourierRepository struct{ DB *sql.DB }

func NewPostgresCourierRepository(db *sql.DB) *PostgresCourierRepository {
	return &PostgresCourierRepository{DB: db}
}

// FindByID returns the courier, or (nil, nil) when none matches id.
func (r *PostgresCourierRepository) FindByID(ctx context.Context, id int64) (*domain.Courier, error) {
	if r.DB == nil {
		return nil, errors.New("courier repository: DB is nil")
	}

	q := `
	SELECT courier_id, full_name, active
	FROM couriers
	WHERE courier_id = $1;
	`

	var c domain.Courier
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&c.CourierID, &c.FullName, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find courier %d: %w", id, err)
	}

	return &c, nil
}
