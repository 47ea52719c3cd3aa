package telemetry

import (
	"context"
	"time"
)

type Service struct {
	readings    ReadingRepository
	filterField FilterField
}

// NewService builds the telemetry service. filterField decides which reading
// identifier the per-key latest endpoint matches; which one is correct is a
// deployment choice, so it comes from configuration.
func NewService(readings ReadingRepository, filterField FilterField) *Service {
	if filterField == "" {
		filterField = FilterByUser
	}
	return &Service{readings: readings, filterField: filterField}
}

// Ingest stamps the reading with the server reception time (UTC) and stores
// it. The device-supplied fecha/hora are kept verbatim; ordering never trusts
// the device clock.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (*Reading, error) {
	rd := &Reading{
		DeviceID: in.Device,
		Date:     in.Date,
		Time:     in.Time,
		Location: Location{
			Latitude:  *in.Location.Latitude,
			Longitude: *in.Location.Longitude,
		},
		ReceivedAt: time.Now().UTC(),
	}
	if in.User != "" {
		u := in.User
		rd.UserRef = &u
	}
	if err := s.readings.Create(ctx, rd); err != nil {
		return nil, err
	}
	return rd, nil
}

func (s *Service) Latest(ctx context.Context) (*Reading, error) {
	return s.readings.Latest(ctx)
}

// LatestFor returns the newest reading whose configured filter field matches
// the given value.
func (s *Service) LatestFor(ctx context.Context, value string) (*Reading, error) {
	return s.readings.LatestBy(ctx, s.filterField, value)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Reading, error) {
	return s.readings.List(ctx, filter)
}
