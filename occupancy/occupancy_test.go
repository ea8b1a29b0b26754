package occupancy

import (
	"strings"
	"testing"

	"posada/apperr"
	"posada/models"
)

const single = "habitacion_1_persona"
const double = "habitacion_2_personas"

func testInventory() Inventory {
	return Inventory{single: 10, double: 15}
}

func reservation(date string, days int, status models.ReservationStatus, sels ...models.RoomSelection) models.Reservation {
	return models.Reservation{
		ID:              "r-" + date,
		UserID:          "u1",
		ReservationDate: date,
		NumberOfDays:    days,
		RoomSelections:  sels,
		Status:          status,
	}
}

func request(t *testing.T, date string, days int, sels ...models.RoomSelection) Request {
	t.Helper()
	start, err := ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", date, err)
	}
	return Request{StartDate: start, NumberOfDays: days, Selections: sels}
}

func TestCommittedSumsOverlappingStays(t *testing.T) {
	p := Policy{}
	existing := []models.Reservation{
		reservation("2024-06-01", 3, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 6}),
		reservation("2024-06-02", 1, models.ReservationConfirmed, models.RoomSelection{Type: single, Quantity: 2}),
	}
	night, _ := ParseDate("2024-06-02")
	if got := p.Committed(existing, night, single); got != 8 {
		t.Fatalf("Committed = %d, want 8", got)
	}
	// category absent from a reservation contributes zero
	if got := p.Committed(existing, night, double); got != 0 {
		t.Fatalf("Committed(double) = %d, want 0", got)
	}
	// outside every stay range
	outside, _ := ParseDate("2024-06-04")
	if got := p.Committed(existing, outside, single); got != 0 {
		t.Fatalf("Committed(outside) = %d, want 0", got)
	}
}

// The worked capacity example: inventory 10 singles, A holds 6 over
// 06-01..06-03, B wants 5 overlapping and must see 4 remaining, C wants
// 4 and fits.
func TestCheckCapacityExample(t *testing.T) {
	p := Policy{}
	inv := testInventory()
	existing := []models.Reservation{
		reservation("2024-06-01", 3, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 6}),
	}

	err := p.Check(inv, existing, request(t, "2024-06-02", 2, models.RoomSelection{Type: single, Quantity: 5}))
	if !apperr.Is(err, apperr.CapacityExceeded) {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{single, "2024-06-02", "4"} {
		if !strings.Contains(msg, want) {
			t.Errorf("rejection message %q missing %q", msg, want)
		}
	}

	if err := p.Check(inv, existing, request(t, "2024-06-02", 2, models.RoomSelection{Type: single, Quantity: 4})); err != nil {
		t.Fatalf("expected admission, got %v", err)
	}
}

func TestCheckFailsFastOnFirstViolatingNight(t *testing.T) {
	p := Policy{}
	inv := testInventory()
	// 06-03 is full but 06-02 already violates; the message must name 06-02
	existing := []models.Reservation{
		reservation("2024-06-02", 2, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 10}),
	}
	err := p.Check(inv, existing, request(t, "2024-06-01", 3, models.RoomSelection{Type: single, Quantity: 1}))
	if !apperr.Is(err, apperr.CapacityExceeded) {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "2024-06-02") {
		t.Fatalf("expected first violating night 2024-06-02 in %q", err.Error())
	}
}

func TestCheckValidation(t *testing.T) {
	p := Policy{}
	inv := testInventory()
	var none []models.Reservation

	cases := []struct {
		name string
		req  Request
	}{
		{"empty selections", request(t, "2024-06-01", 2)},
		{"zero days", request(t, "2024-06-01", 0, models.RoomSelection{Type: single, Quantity: 1})},
		{"too many days", request(t, "2024-06-01", 8, models.RoomSelection{Type: single, Quantity: 1})},
		{"zero quantity", request(t, "2024-06-01", 2, models.RoomSelection{Type: single, Quantity: 0})},
		{"too many rooms", request(t, "2024-06-01", 2, models.RoomSelection{Type: single, Quantity: 6})},
		{"unknown category", request(t, "2024-06-01", 2, models.RoomSelection{Type: "suite_presidencial", Quantity: 1})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := p.Check(inv, none, tc.req)
			if !apperr.Is(err, apperr.Validation) {
				t.Fatalf("expected Validation error, got %v", err)
			}
		})
	}
}

func TestNormalizeSelectionsMergesDuplicates(t *testing.T) {
	merged := NormalizeSelections([]models.RoomSelection{
		{Type: single, Quantity: 2},
		{Type: double, Quantity: 1},
		{Type: single, Quantity: 3},
	})
	if len(merged) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(merged))
	}
	if merged[0].Type != single || merged[0].Quantity != 5 {
		t.Fatalf("expected 5×%s first, got %+v", single, merged[0])
	}
	if merged[1].Type != double || merged[1].Quantity != 1 {
		t.Fatalf("expected 1×%s second, got %+v", double, merged[1])
	}
}

func TestCancelledPolicySwitch(t *testing.T) {
	inv := testInventory()
	existing := []models.Reservation{
		reservation("2024-06-01", 1, models.ReservationCancelled, models.RoomSelection{Type: single, Quantity: 10}),
	}
	req := request(t, "2024-06-01", 1, models.RoomSelection{Type: single, Quantity: 1})

	if err := (Policy{CountCancelled: false}).Check(inv, existing, req); err != nil {
		t.Fatalf("cancelled stay should free its rooms, got %v", err)
	}
	if err := (Policy{CountCancelled: true}).Check(inv, existing, req); !apperr.Is(err, apperr.CapacityExceeded) {
		t.Fatalf("with CountCancelled the date stays full, got %v", err)
	}
}

func TestFullyOccupiedDatesAllCategoriesRule(t *testing.T) {
	p := Policy{}
	inv := testInventory()

	// one booking fills every category on 06-01 only
	full := []models.Reservation{
		reservation("2024-06-01", 1, models.ReservationPending,
			models.RoomSelection{Type: single, Quantity: 5},
			models.RoomSelection{Type: double, Quantity: 5},
		),
		reservation("2024-06-01", 1, models.ReservationConfirmed,
			models.RoomSelection{Type: single, Quantity: 5},
			models.RoomSelection{Type: double, Quantity: 5},
		),
		reservation("2024-06-01", 1, models.ReservationPending,
			models.RoomSelection{Type: double, Quantity: 5},
		),
	}
	dates := p.FullyOccupiedDates(inv, full)
	if len(dates) != 1 || dates[0] != "2024-06-01" {
		t.Fatalf("expected exactly [2024-06-01], got %v", dates)
	}

	// a date full in one category but not the other stays selectable
	partial := []models.Reservation{
		reservation("2024-06-02", 1, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 5}),
		reservation("2024-06-02", 1, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 5}),
	}
	if dates := p.FullyOccupiedDates(inv, partial); len(dates) != 0 {
		t.Fatalf("singles full but doubles free; expected no occupied dates, got %v", dates)
	}
}

func TestFullyOccupiedDatesSorted(t *testing.T) {
	p := Policy{}
	inv := Inventory{single: 1}
	existing := []models.Reservation{
		reservation("2024-06-03", 1, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 1}),
		reservation("2024-06-01", 2, models.ReservationPending, models.RoomSelection{Type: single, Quantity: 1}),
	}
	dates := p.FullyOccupiedDates(inv, existing)
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}
