// Package occupancy is the room allocation engine: given the full
// reservation set it decides, night by night and category by category,
// whether a requested stay fits inside the fixed room inventory. It is
// pure computation over a snapshot; it never touches the store.
package occupancy

import (
	"sort"
	"time"

	"posada/apperr"
	"posada/models"
)

// Inventory maps a room category to its total room count. Counts are
// fixed configuration, not user input.
type Inventory map[string]int

// Stay limits enforced on every reservation request.
const (
	MinDays = 1
	MaxDays = 7
	MinQty  = 1
	MaxQty  = 5
)

// Policy controls which reservations count against inventory. The
// historical behavior counted cancelled reservations too; keeping that
// switch explicit makes the choice a tested policy instead of an
// accident of omission.
type Policy struct {
	CountCancelled bool
}

func (p Policy) counts(status models.ReservationStatus) bool {
	if status == models.ReservationCancelled {
		return p.CountCancelled
	}
	return true
}

// Committed returns the total quantity of the category already committed
// on the given night, summed across every counted reservation whose stay
// covers it. Recomputed from scratch on each call; the reservation set is
// small enough that a full scan is the design choice.
func (p Policy) Committed(reservations []models.Reservation, night time.Time, category string) int {
	total := 0
	for _, res := range reservations {
		if !p.counts(res.Status) {
			continue
		}
		start, err := ParseDate(res.ReservationDate)
		if err != nil {
			continue
		}
		if !Covers(night, start, res.NumberOfDays) {
			continue
		}
		for _, sel := range res.RoomSelections {
			if sel.Type == category {
				total += sel.Quantity
			}
		}
	}
	return total
}

// Request is a candidate reservation to admit or reject.
type Request struct {
	StartDate    time.Time
	NumberOfDays int
	Selections   []models.RoomSelection
}

// NormalizeSelections merges repeated categories into a single selection,
// summing quantities and keeping first-appearance order.
func NormalizeSelections(selections []models.RoomSelection) []models.RoomSelection {
	merged := make([]models.RoomSelection, 0, len(selections))
	index := make(map[string]int, len(selections))
	for _, sel := range selections {
		if i, ok := index[sel.Type]; ok {
			merged[i].Quantity += sel.Quantity
			continue
		}
		index[sel.Type] = len(merged)
		merged = append(merged, sel)
	}
	return merged
}

// Check admits or rejects a request against the current reservation set.
// Categories are scanned in request order and nights chronologically; the
// first violation rejects immediately with the category, the date, and
// the remaining capacity. No writes happen here.
func (p Policy) Check(inv Inventory, reservations []models.Reservation, req Request) error {
	if len(req.Selections) == 0 {
		return apperr.New(apperr.Validation, "Todos los campos son obligatorios.")
	}
	if req.NumberOfDays < MinDays || req.NumberOfDays > MaxDays {
		return apperr.New(apperr.Validation, "La cantidad de días debe ser entre %d y %d.", MinDays, MaxDays)
	}

	nights := Nights(req.StartDate, req.NumberOfDays)
	for _, sel := range req.Selections {
		if sel.Quantity < MinQty || sel.Quantity > MaxQty {
			return apperr.New(apperr.Validation,
				"Cantidad de habitaciones no válida para %s. Debe ser entre %d y %d.", sel.Type, MinQty, MaxQty)
		}
		capacity, ok := inv[sel.Type]
		if !ok {
			return apperr.New(apperr.Validation, "Tipo de habitación no válido: %s.", sel.Type)
		}
		for _, night := range nights {
			committed := p.Committed(reservations, night, sel.Type)
			if committed+sel.Quantity > capacity {
				return apperr.New(apperr.CapacityExceeded,
					"Disponibilidad excedida para el %s el %s. Solo quedan %d habitaciones de ese tipo.",
					sel.Type, night.Format(DateLayout), capacity-committed)
			}
		}
	}
	return nil
}

// FullyOccupiedDates lists, sorted ascending, every date on which EVERY
// category is at full inventory. A date with spare capacity in even one
// category is still selectable and therefore not reported.
func (p Policy) FullyOccupiedDates(inv Inventory, reservations []models.Reservation) []string {
	// per date, per category committed totals
	byDate := make(map[string]map[string]int)
	for _, res := range reservations {
		if !p.counts(res.Status) {
			continue
		}
		start, err := ParseDate(res.ReservationDate)
		if err != nil {
			continue
		}
		for _, night := range Nights(start, res.NumberOfDays) {
			key := night.Format(DateLayout)
			if byDate[key] == nil {
				byDate[key] = make(map[string]int)
			}
			for _, sel := range res.RoomSelections {
				byDate[key][sel.Type] += sel.Quantity
			}
		}
	}

	occupied := make([]string, 0)
	for date, committed := range byDate {
		full := true
		for category, capacity := range inv {
			if committed[category] < capacity {
				full = false
				break
			}
		}
		if full {
			occupied = append(occupied, date)
		}
	}
	sort.Strings(occupied)
	return occupied
}
