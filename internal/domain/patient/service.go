package patient

import (
	"context"
	"time"
)

type Service struct {
	patients PatientRepository
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients}
}

// Register stores a new patient record with its registration timestamp. The
// input must already be validated; age is the coerced integer from Validate.
func (s *Service) Register(ctx context.Context, in RegisterInput, age int) (*Patient, error) {
	p := &Patient{
		CaregiverName: in.CaregiverName,
		Age:           age,
		CreatedAt:     time.Now().UTC(),
	}
	if in.Occupation != "" {
		v := in.Occupation
		p.Occupation = &v
	}
	if in.Relationship != "" {
		v := in.Relationship
		p.Relationship = &v
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}
