package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weighttrack/internal/domain"
)

const profileColumns = "id, name, start_weight, goal_weight, start_date, target_date"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p      domain.Profile
		goal   sql.NullFloat64
		target sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Name, &p.StartWeight, &goal, &p.StartDate, &target); err != nil {
		return nil, err
	}
	if goal.Valid {
		p.GoalWeight = &goal.Float64
	}
	if target.Valid {
		p.TargetDate = &target.Time
	}
	return &p, nil
}

// CreateProfile inserts a new profile.
func (d *DB) CreateProfile(ctx context.Context, np domain.NewProfile) (*domain.Profile, error) {
	return scanProfile(d.sql.QueryRowContext(ctx,
		"INSERT INTO profiles (name, start_weight, goal_weight, start_date, target_date) VALUES ($1, $2, $3, $4, $5) RETURNING "+profileColumns,
		np.Name, np.StartWeight, nullFloat(np.GoalWeight), np.StartDate.UTC(), nullTime(np.TargetDate),
	))
}

// GetProfile retrieves a profile by ID.
func (d *DB) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := scanProfile(d.sql.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	return p, err
}

// DeleteProfile deletes a profile and its entries in one transaction.
func (d *DB) DeleteProfile(ctx context.Context, id int64) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM weight_entries WHERE user_id = $1", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return tx.Commit()
}
