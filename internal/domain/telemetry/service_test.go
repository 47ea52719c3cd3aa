package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockReadingRepo struct {
	store []*Reading
}

func newMockReadingRepo() *mockReadingRepo {
	return &mockReadingRepo{}
}

func (m *mockReadingRepo) Create(_ context.Context, r *Reading) error {
	r.ID = uuid.New()
	m.store = append(m.store, r)
	return nil
}

func (m *mockReadingRepo) newest(match func(*Reading) bool) (*Reading, error) {
	var best *Reading
	for _, r := range m.store {
		if !match(r) {
			continue
		}
		if best == nil || r.ReceivedAt.After(best.ReceivedAt) {
			best = r
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

func (m *mockReadingRepo) Latest(_ context.Context) (*Reading, error) {
	return m.newest(func(*Reading) bool { return true })
}

func (m *mockReadingRepo) LatestBy(_ context.Context, field FilterField, value string) (*Reading, error) {
	return m.newest(func(r *Reading) bool {
		if field == FilterByDevice {
			return r.DeviceID == value
		}
		return r.UserRef != nil && *r.UserRef == value
	})
}

func (m *mockReadingRepo) List(_ context.Context, filter ListFilter) ([]*Reading, error) {
	var out []*Reading
	for _, r := range m.store {
		if filter.DeviceID != "" && r.DeviceID != filter.DeviceID {
			continue
		}
		if filter.UserRef != "" && (r.UserRef == nil || *r.UserRef != filter.UserRef) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// -- Service Tests --

func TestIngest_StampsServerTime(t *testing.T) {
	svc := NewService(newMockReadingRepo(), FilterByUser)
	before := time.Now().UTC()
	rd, err := svc.Ingest(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := time.Now().UTC()

	if rd.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if rd.ReceivedAt.Before(before) || rd.ReceivedAt.After(after) {
		t.Errorf("ReceivedAt %v not within [%v, %v]", rd.ReceivedAt, before, after)
	}
	if rd.Location.Latitude != 19.1 || rd.Location.Longitude != -99.1 {
		t.Errorf("location = %+v, want submitted coordinates", rd.Location)
	}
}

func TestIngest_OptionalUser(t *testing.T) {
	svc := NewService(newMockReadingRepo(), FilterByUser)

	rd, err := svc.Ingest(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rd.UserRef != nil {
		t.Error("expected UserRef to be nil when usuario is absent")
	}

	in := validInput()
	in.User = "mariag"
	rd, err = svc.Ingest(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rd.UserRef == nil || *rd.UserRef != "mariag" {
		t.Errorf("UserRef = %v, want mariag", rd.UserRef)
	}
}

func TestLatest_ReturnsNewestByServerTime(t *testing.T) {
	repo := newMockReadingRepo()
	svc := NewService(repo, FilterByUser)

	// Insert out of order: the later server timestamp must win regardless.
	old := &Reading{DeviceID: "devA", Date: "2025-01-02", Time: "09:00",
		ReceivedAt: time.Now().UTC().Add(-time.Hour)}
	recent := &Reading{DeviceID: "devB", Date: "2025-01-01", Time: "08:00",
		ReceivedAt: time.Now().UTC()}
	repo.Create(context.Background(), recent)
	repo.Create(context.Background(), old)

	got, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DeviceID != "devB" {
		t.Errorf("latest device = %s, want devB (newest received_at)", got.DeviceID)
	}
}

func TestLatest_EmptyStore(t *testing.T) {
	svc := NewService(newMockReadingRepo(), FilterByUser)
	if _, err := svc.Latest(context.Background()); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLatestFor_FiltersByConfiguredField(t *testing.T) {
	repo := newMockReadingRepo()
	ana := "ana"
	repo.Create(context.Background(), &Reading{DeviceID: "devA", UserRef: &ana,
		ReceivedAt: time.Now().UTC().Add(-time.Minute)})
	repo.Create(context.Background(), &Reading{DeviceID: "devB",
		ReceivedAt: time.Now().UTC()})

	byUser := NewService(repo, FilterByUser)
	got, err := byUser.LatestFor(context.Background(), "ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DeviceID != "devA" {
		t.Errorf("device = %s, want devA", got.DeviceID)
	}

	byDevice := NewService(repo, FilterByDevice)
	got, err = byDevice.LatestFor(context.Background(), "devB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DeviceID != "devB" {
		t.Errorf("device = %s, want devB", got.DeviceID)
	}
}

func TestLatestFor_NoMatch(t *testing.T) {
	svc := NewService(newMockReadingRepo(), FilterByUser)
	if _, err := svc.LatestFor(context.Background(), "nadie"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNewService_DefaultsFilterField(t *testing.T) {
	repo := newMockReadingRepo()
	ana := "ana"
	repo.Create(context.Background(), &Reading{DeviceID: "devA", UserRef: &ana,
		ReceivedAt: time.Now().UTC()})

	svc := NewService(repo, "")
	if _, err := svc.LatestFor(context.Background(), "ana"); err != nil {
		t.Errorf("expected default filter by usuario, got error: %v", err)
	}
}
