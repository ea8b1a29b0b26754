package reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"posada/globals"
	"posada/occupancy"
	"posada/store"
	"posada/store/memory"
)

func authedRequest(method, target, body, userID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestCreateReservationHandler(t *testing.T) {
	mgr := NewManager(store.NewSerialized(memory.New()), occupancy.Inventory{single: 2}, false)
	h := NewHandler(mgr)

	body := `{"reservationDate":"2024-06-01","numberOfDays":2,"roomSelections":[{"type":"habitacion_1_persona","quantity":2}]}`
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, authedRequest(http.MethodPost, "/api/reservations", body, "u1"), nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// the same request again no longer fits
	rec = httptest.NewRecorder()
	h.CreateReservation(rec, authedRequest(http.MethodPost, "/api/reservations", body, "u2"), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on a full date, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "2024-06-01") {
		t.Fatalf("rejection body should name the date: %s", rec.Body.String())
	}
}

func TestOccupiedDatesHandler(t *testing.T) {
	mgr := NewManager(store.NewSerialized(memory.New()), occupancy.Inventory{single: 1}, false)
	h := NewHandler(mgr)

	body := `{"reservationDate":"2024-06-01","numberOfDays":1,"roomSelections":[{"type":"habitacion_1_persona","quantity":1}]}`
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, authedRequest(http.MethodPost, "/api/reservations", body, "u1"), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.GetOccupiedDates(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/occupied-dates", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var dates []string
	if err := json.Unmarshal(rec.Body.Bytes(), &dates); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dates) != 1 || dates[0] != "2024-06-01" {
		t.Fatalf("expected [2024-06-01], got %v", dates)
	}
}

func TestCancelMyReservationHandler(t *testing.T) {
	mgr := NewManager(store.NewSerialized(memory.New()), occupancy.Inventory{single: 5}, false)
	h := NewHandler(mgr)

	body := `{"reservationDate":"2999-06-10","numberOfDays":1,"roomSelections":[{"type":"habitacion_1_persona","quantity":1}]}`
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, authedRequest(http.MethodPost, "/api/reservations", body, "u1"), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Reservation struct {
			ID string `json:"id"`
		} `json:"reservation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	params := httprouter.Params{{Key: "id", Value: created.Reservation.ID}}

	// another member cannot cancel it
	rec = httptest.NewRecorder()
	h.CancelMyReservation(rec, authedRequest(http.MethodPatch, "/api/reservations/x/cancel", "", "u2"), params)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.CancelMyReservation(rec, authedRequest(http.MethodPatch, "/api/reservations/x/cancel", "", "u1"), params)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
