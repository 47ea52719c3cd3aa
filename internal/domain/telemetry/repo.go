package telemetry

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no reading matches a latest-reading query.
var ErrNotFound = errors.New("reading not found")

// FilterField selects which reading identifier a filtered query matches.
type FilterField string

const (
	FilterByUser   FilterField = "usuario"
	FilterByDevice FilterField = "dispositivo"
)

// ListFilter narrows a list query. Zero-value fields are ignored.
type ListFilter struct {
	UserRef  string
	DeviceID string
}

type ReadingRepository interface {
	Create(ctx context.Context, r *Reading) error
	Latest(ctx context.Context) (*Reading, error)
	LatestBy(ctx context.Context, field FilterField, value string) (*Reading, error)
	List(ctx context.Context, filter ListFilter) ([]*Reading, error)
}
