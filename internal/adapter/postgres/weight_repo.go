package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"
)

const entryColumns = "id, user_id, entry_date, weight, note, created_at"

func scanEntry(row rowScanner) (*domain.WeightEntry, error) {
	var (
		e    domain.WeightEntry
		note sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Weight, &note, &e.CreatedAt); err != nil {
		return nil, err
	}
	if note.Valid {
		e.Note = &note.String
	}
	return &e, nil
}

// CreateEntry inserts a new weight entry. A zero date is stored as now.
func (d *DB) CreateEntry(ctx context.Context, userID int64, weight float64, note *string, date time.Time) (*domain.WeightEntry, error) {
	now := time.Now()
	if date.IsZero() {
		date = now
	}
	e, err := scanEntry(d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_entries(user_id, entry_date, weight, note, created_at) VALUES($1, $2, $3, $4, $5) RETURNING "+entryColumns+";",
		userID, date.UTC(), weight, nullString(note), now.UTC(),
	))
	if isForeignKeyViolation(err) {
		return nil, domain.ErrProfileNotFound
	}
	return e, err
}

// ListEntries returns every entry of a user, most recent date first.
func (d *DB) ListEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM weight_entries WHERE user_id=$1 ORDER BY entry_date DESC, id DESC;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// EntryForDay returns the most recent entry on the local calendar day of day.
func (d *DB) EntryForDay(ctx context.Context, userID int64, day time.Time) (*domain.WeightEntry, error) {
	dayStart, dayEnd := domain.DayBounds(day, nil)

	e, err := scanEntry(d.sql.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM weight_entries WHERE user_id=$1 AND entry_date >= $2 AND entry_date < $3 ORDER BY entry_date DESC LIMIT 1;",
		userID, dayStart.UTC(), dayEnd.UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// UpdateEntry overwrites weight, note and date of an entry owned by userID.
func (d *DB) UpdateEntry(ctx context.Context, userID, id int64, weight float64, note *string, date time.Time) (*domain.WeightEntry, error) {
	e, err := scanEntry(d.sql.QueryRowContext(ctx,
		"UPDATE weight_entries SET weight=$3, note=$4, entry_date=$5 WHERE id=$1 AND user_id=$2 RETURNING "+entryColumns+";",
		id, userID, weight, nullString(note), date.UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	return e, err
}

// DeleteEntry removes one entry owned by userID.
func (d *DB) DeleteEntry(ctx context.Context, userID, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM weight_entries WHERE id=$1 AND user_id=$2;", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// DeleteAllEntries removes every entry of a user.
func (d *DB) DeleteAllEntries(ctx context.Context, userID int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM weight_entries WHERE user_id=$1;", userID)
	return err
}
