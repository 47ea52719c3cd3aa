package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepoPG struct{ pool *pgxpool.Pool }

func NewAccountRepoPG(pool *pgxpool.Pool) AccountRepository {
	return &accountRepoPG{pool: pool}
}

const accountCols = `id, caregiver_name, caregiver_age, occupation, relationship,
	username, email, phone, password_hash, created_at`

func (r *accountRepoPG) scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.CaregiverName, &a.CaregiverAge, &a.Occupation,
		&a.Relationship, &a.Username, &a.Email, &a.Phone, &a.PasswordHash,
		&a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *accountRepoPG) Create(ctx context.Context, a *Account) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, caregiver_name, caregiver_age, occupation, relationship,
			username, email, phone, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.CaregiverName, a.CaregiverAge, a.Occupation, a.Relationship,
		a.Username, a.Email, a.Phone, a.PasswordHash, a.CreatedAt)
	return mapUniqueViolation(err)
}

// mapUniqueViolation translates a 23505 from the users table's unique indexes
// into the same conflict errors the pre-insert checks produce, so a lost race
// still surfaces as a duplicate to the caller.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameTaken
		case "users_email_lower_key":
			return ErrEmailTaken
		}
	}
	return err
}

func (r *accountRepoPG) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return r.scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM users WHERE username = $1`, username))
}

func (r *accountRepoPG) ExistsUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).
		Scan(&exists)
	return exists, err
}

func (r *accountRepoPG) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1)`, email).
		Scan(&exists)
	return exists, err
}
