package account

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account maps to the users table. The password hash is never serialized.
type Account struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CaregiverName string    `db:"caregiver_name" json:"nombreCuidador"`
	CaregiverAge  int       `db:"caregiver_age" json:"edadCuidador"`
	Occupation    *string   `db:"occupation" json:"ocupacion,omitempty"`
	Relationship  *string   `db:"relationship" json:"parentesco,omitempty"`
	Username      string    `db:"username" json:"usuario"`
	Email         string    `db:"email" json:"correo"`
	Phone         *string   `db:"phone" json:"telefono,omitempty"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"fechaRegistro"`
}

// CreateInput is the payload of POST /crear-cuenta.
type CreateInput struct {
	CaregiverName   string      `json:"nombreCuidador"`
	CaregiverAge    json.Number `json:"edadCuidador"`
	Occupation      string      `json:"ocupacion"`
	Relationship    string      `json:"parentesco"`
	Username        string      `json:"usuario"`
	Password        string      `json:"contrasena"`
	ConfirmPassword string      `json:"confirmarContrasena"`
	Email           string      `json:"correo"`
	Phone           string      `json:"telefono"`
}

// Validate checks the creation payload in contract order: required fields,
// password confirmation, then age numeric. Returns the coerced age.
func (in *CreateInput) Validate() (int, error) {
	switch {
	case in.CaregiverName == "":
		return 0, fmt.Errorf("falta el campo obligatorio: nombreCuidador")
	case in.CaregiverAge.String() == "":
		return 0, fmt.Errorf("falta el campo obligatorio: edadCuidador")
	case in.Username == "":
		return 0, fmt.Errorf("falta el campo obligatorio: usuario")
	case in.Password == "":
		return 0, fmt.Errorf("falta el campo obligatorio: contrasena")
	case in.ConfirmPassword == "":
		return 0, fmt.Errorf("falta el campo obligatorio: confirmarContrasena")
	case in.Email == "":
		return 0, fmt.Errorf("falta el campo obligatorio: correo")
	}
	if in.Password != in.ConfirmPassword {
		return 0, fmt.Errorf("las contraseñas no coinciden")
	}
	age, err := in.CaregiverAge.Int64()
	if err != nil {
		return 0, fmt.Errorf("edadCuidador debe ser un número entero")
	}
	if age < 0 {
		return 0, fmt.Errorf("edadCuidador debe ser un número positivo")
	}
	return int(age), nil
}

// LoginInput is the payload of POST /login.
type LoginInput struct {
	Username string `json:"usuario"`
	Password string `json:"contrasena"`
}

func (in *LoginInput) Validate() error {
	if in.Username == "" || in.Password == "" {
		return fmt.Errorf("usuario y contrasena son obligatorios")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email so the uniqueness check and
// the lower(email) index see the same value.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
