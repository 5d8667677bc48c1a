package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type SQLRepo struct {
	DB *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db}
}

func (r *SQLRepo) Create(ctx context.Context, v *Vehicle) error {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO vehicles (id, user_id, year, make, model) VALUES (?, ?, ?, ?, ?)",
		id, v.UserID, v.Year, v.Make, v.Model,
	)
	if err != nil {
		return fmt.Errorf("failed to exec create vehicle statement: %w", err)
	}
	v.ID = id
	return nil
}

func (r *SQLRepo) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	v := Vehicle{ID: id}
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, year, make, model FROM vehicles WHERE id = ?", id,
	).Scan(&v.UserID, &v.Year, &v.Make, &v.Model)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute get vehicle query: %w", err)
	}
	return &v, nil
}

func (r *SQLRepo) ListByUser(ctx context.Context, userID string) ([]*Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, year, make, model FROM vehicles WHERE user_id = ? ORDER BY year, id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list vehicles query: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*Vehicle, 0)
	for rows.Next() {
		v := Vehicle{UserID: userID}
		if err := rows.Scan(&v.ID, &v.Year, &v.Make, &v.Model); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vehicles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to execute delete vehicle query: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
