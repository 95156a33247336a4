package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-service/internal/domain"
)

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// FindByIDs returns the orders matching ids. Missing ids are simply
// absent from the result.
func (r *PostgresOrderRepository) FindByIDs(ctx context.Context, ids []int64) ([]*domain.DeliveryOrder, error) {
	if r.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}
	if len(ids) == 0 {
		return []*domain.DeliveryOrder{}, nil
	}

	q := `
	SELECT order_id, address_label, dest_lat, dest_lng, courier_id
	FROM orders
	WHERE order_id = ANY($1::bigint[]);
	`

	rows, err := r.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("find orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.DeliveryOrder, 0, len(ids))
	for rows.Next() {
		var (
			o         domain.DeliveryOrder
			lat, lng  sql.NullFloat64
			courierID sql.NullInt64
		)
		if err := rows.Scan(&o.OrderID, &o.AddressLabel, &lat, &lng, &courierID); err != nil {
			return nil, fmt.Errorf("find orders: scan row: %w", err)
		}
		if lat.Valid && lng.Valid {
			o.Destination = &domain.Coordinate{Lat: lat.Float64, Lng: lng.Float64}
		}
		if courierID.Valid {
			o.CourierID = &courierID.Int64
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find orders: row iteration: %w", err)
	}

	return orders, nil
}
