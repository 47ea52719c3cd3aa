package patient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Records are append-only; there is no
// update or delete path.
type Patient struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CaregiverName string    `db:"caregiver_name" json:"nombreCuidador"`
	Age           int       `db:"age" json:"edad"`
	Occupation    *string   `db:"occupation" json:"ocupacion,omitempty"`
	Relationship  *string   `db:"relationship" json:"parentesco,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"fechaRegistro"`
}

// RegisterInput is the payload of POST /nuevo-paciente. edad is a
// json.Number so both 72 and "72" are accepted, as registration forms send
// either.
type RegisterInput struct {
	CaregiverName string      `json:"nombreCuidador"`
	Age           json.Number `json:"edad"`
	Occupation    string      `json:"ocupacion"`
	Relationship  string      `json:"parentesco"`
}

// Validate checks required fields and coerces edad to an integer.
func (in *RegisterInput) Validate() (int, error) {
	if in.CaregiverName == "" {
		return 0, fmt.Errorf("falta el campo obligatorio: nombreCuidador")
	}
	if in.Age.String() == "" {
		return 0, fmt.Errorf("falta el campo obligatorio: edad")
	}
	age, err := in.Age.Int64()
	if err != nil {
		return 0, fmt.Errorf("edad debe ser un número entero")
	}
	if age < 0 {
		return 0, fmt.Errorf("edad debe ser un número positivo")
	}
	return int(age), nil
}
