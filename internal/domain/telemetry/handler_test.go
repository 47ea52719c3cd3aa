package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler() (*Handler, *echo.Echo, *mockReadingRepo) {
	repo := newMockReadingRepo()
	svc := NewService(repo, FilterByUser)
	h := NewHandler(svc, zerolog.Nop())
	e := echo.New()
	return h, e, repo
}

func TestIngest_Success(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"fecha":"2025-01-01","hora":"10:00","ubicacion":{"latitud":19.1,"longitud":-99.1},"dispositivo":"devA"}`
	req := httptest.NewRequest(http.MethodPost, "/enviar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Ingest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var result map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result["id"] == nil || result["id"] == "" {
		t.Error("expected generated id in response")
	}
	if result["dispositivo"] != "devA" {
		t.Errorf("dispositivo = %v, want devA", result["dispositivo"])
	}
	if result["fecha"] != "2025-01-01" || result["hora"] != "10:00" {
		t.Errorf("expected echoed fecha/hora, got %v / %v", result["fecha"], result["hora"])
	}
	if result["fechaRecepcionServidor"] == nil {
		t.Error("expected server reception timestamp in response")
	}
}

func TestIngest_ZeroCoordinatesAccepted(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"fecha":"2025-01-01","hora":"10:00","ubicacion":{"latitud":0,"longitud":0},"dispositivo":"devA"}`
	req := httptest.NewRequest(http.MethodPost, "/enviar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Ingest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 for zero coordinates, got %d", rec.Code)
	}
}

func TestIngest_MissingFields(t *testing.T) {
	h, e, repo := newTestHandler()
	body := `{"fecha":"2025-01-01","dispositivo":"devA"}`
	req := httptest.NewRequest(http.MethodPost, "/enviar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Ingest(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
	if len(repo.store) != 0 {
		t.Error("no reading must be written on validation failure")
	}
}

func TestLatest_ReturnsIngestedReading(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"fecha":"2025-01-01","hora":"10:00","ubicacion":{"latitud":19.1,"longitud":-99.1},"dispositivo":"devA"}`
	req := httptest.NewRequest(http.MethodPost, "/enviar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Ingest(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/recibir", nil)
	rec = httptest.NewRecorder()
	if err := h.Latest(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &result)
	loc := result["ubicacion"].(map[string]interface{})
	if loc["latitud"] != 19.1 || loc["longitud"] != -99.1 {
		t.Errorf("location = %v, want submitted coordinates", loc)
	}
}

func TestLatest_Empty(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/recibir", nil)
	rec := httptest.NewRecorder()
	err := h.Latest(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", he.Code)
	}
}

func TestLatestFor_User(t *testing.T) {
	h, e, repo := newTestHandler()
	ana := "ana"
	repo.Create(context.Background(), &Reading{DeviceID: "devA", UserRef: &ana,
		Date: "2025-01-01", Time: "10:00", ReceivedAt: time.Now().UTC()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("usuario")
	c.SetParamValues("ana")
	if err := h.LatestFor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("usuario")
	c.SetParamValues("nadie")
	err := h.LatestFor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %v", err)
	}
}

func TestList_EmptyReturnsEmptyArray(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/datos-ubicacion", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestList_FilterByDevice(t *testing.T) {
	h, e, repo := newTestHandler()
	repo.Create(context.Background(), &Reading{DeviceID: "devA", Date: "2025-01-01", Time: "10:00",
		ReceivedAt: time.Now().UTC()})
	repo.Create(context.Background(), &Reading{DeviceID: "devB", Date: "2025-01-01", Time: "11:00",
		ReceivedAt: time.Now().UTC()})

	req := httptest.NewRequest(http.MethodGet, "/datos-ubicacion?dispositivo=devA", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result []map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &result)
	if len(result) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(result))
	}
	if result[0]["dispositivo"] != "devA" {
		t.Errorf("dispositivo = %v, want devA", result[0]["dispositivo"])
	}
	if _, ok := result[0]["id"]; ok {
		t.Error("list items must not carry the internal id")
	}
}
