package telemetry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Location is a pair of GPS coordinates as reported by the tracker.
type Location struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
}

// Reading maps to the readings table. One record per payload received from a
// tracker; readings are append-only and ordered by the server-side ReceivedAt
// stamp, never by the device clock.
type Reading struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DeviceID   string    `db:"device_id" json:"dispositivo"`
	UserRef    *string   `db:"user_ref" json:"usuario,omitempty"`
	Date       string    `db:"reading_date" json:"fecha"`
	Time       string    `db:"reading_time" json:"hora"`
	Location   Location  `json:"ubicacion"`
	ReceivedAt time.Time `db:"received_at" json:"fechaRecepcionServidor"`
}

// Summary returns the reading without its internal id, for list responses.
func (r *Reading) Summary() map[string]interface{} {
	result := map[string]interface{}{
		"dispositivo":            r.DeviceID,
		"fecha":                  r.Date,
		"hora":                   r.Time,
		"ubicacion":              r.Location,
		"fechaRecepcionServidor": r.ReceivedAt,
	}
	if r.UserRef != nil {
		result["usuario"] = *r.UserRef
	}
	return result
}

// LocationInput carries coordinates from the wire. Pointers distinguish a
// missing coordinate from a legitimate value of exactly 0.
type LocationInput struct {
	Latitude  *float64 `json:"latitud"`
	Longitude *float64 `json:"longitud"`
}

// IngestInput is the payload of POST /enviar.
type IngestInput struct {
	Date     string         `json:"fecha"`
	Time     string         `json:"hora"`
	Location *LocationInput `json:"ubicacion"`
	Device   string         `json:"dispositivo"`
	User     string         `json:"usuario"`
}

// Validate checks that every required field is present and non-empty.
func (in *IngestInput) Validate() error {
	if in.Date == "" {
		return fmt.Errorf("falta el campo obligatorio: fecha")
	}
	if in.Time == "" {
		return fmt.Errorf("falta el campo obligatorio: hora")
	}
	if in.Device == "" {
		return fmt.Errorf("falta el campo obligatorio: dispositivo")
	}
	if in.Location == nil {
		return fmt.Errorf("falta el campo obligatorio: ubicacion")
	}
	if in.Location.Latitude == nil || in.Location.Longitude == nil {
		return fmt.Errorf("la ubicacion debe incluir latitud y longitud")
	}
	return nil
}
