package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type readingRepoPG struct{ pool *pgxpool.Pool }

func NewReadingRepoPG(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepoPG{pool: pool}
}

const readingCols = `id, device_id, user_ref, reading_date, reading_time,
	latitude, longitude, received_at`

func (r *readingRepoPG) scanReading(row pgx.Row) (*Reading, error) {
	var rd Reading
	err := row.Scan(&rd.ID, &rd.DeviceID, &rd.UserRef, &rd.Date, &rd.Time,
		&rd.Location.Latitude, &rd.Location.Longitude, &rd.ReceivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &rd, err
}

func (r *readingRepoPG) Create(ctx context.Context, rd *Reading) error {
	rd.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO readings (id, device_id, user_ref, reading_date, reading_time,
			latitude, longitude, received_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rd.ID, rd.DeviceID, rd.UserRef, rd.Date, rd.Time,
		rd.Location.Latitude, rd.Location.Longitude, rd.ReceivedAt)
	return err
}

func (r *readingRepoPG) Latest(ctx context.Context) (*Reading, error) {
	return r.scanReading(r.pool.QueryRow(ctx,
		`SELECT `+readingCols+` FROM readings ORDER BY received_at DESC LIMIT 1`))
}

// filterColumn maps a filter field to its column. The whitelist keeps user
// input out of SQL identifiers.
func filterColumn(field FilterField) (string, error) {
	switch field {
	case FilterByUser:
		return "user_ref", nil
	case FilterByDevice:
		return "device_id", nil
	}
	return "", fmt.Errorf("unknown filter field: %s", field)
}

func (r *readingRepoPG) LatestBy(ctx context.Context, field FilterField, value string) (*Reading, error) {
	col, err := filterColumn(field)
	if err != nil {
		return nil, err
	}
	return r.scanReading(r.pool.QueryRow(ctx,
		`SELECT `+readingCols+` FROM readings WHERE `+col+` = $1 ORDER BY received_at DESC LIMIT 1`,
		value))
}

func (r *readingRepoPG) List(ctx context.Context, filter ListFilter) ([]*Reading, error) {
	query := `SELECT ` + readingCols + ` FROM readings WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.UserRef != "" {
		query += fmt.Sprintf(` AND user_ref = $%d`, idx)
		args = append(args, filter.UserRef)
		idx++
	}
	if filter.DeviceID != "" {
		query += fmt.Sprintf(` AND device_id = $%d`, idx)
		args = append(args, filter.DeviceID)
		idx++
	}

	query += ` ORDER BY received_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Reading
	for rows.Next() {
		rd, err := r.scanReading(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rd)
	}
	return items, rows.Err()
}
