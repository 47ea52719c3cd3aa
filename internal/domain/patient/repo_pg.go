package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, caregiver_name, age, occupation, relationship, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.CaregiverName, p.Age, p.Occupation, p.Relationship, p.CreatedAt)
	return err
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, caregiver_name, age, occupation, relationship, created_at
		FROM patients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.CaregiverName, &p.Age, &p.Occupation,
			&p.Relationship, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}
