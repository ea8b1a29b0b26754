// Package reservations implements the room reservation lifecycle:
// admission through the occupancy engine, owner self-cancellation with
// its deadline, and the admin status operations.
package reservations

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"posada/apperr"
	"posada/models"
	"posada/occupancy"
	"posada/store"
)

// Manager owns every read-modify-write cycle on the reservation
// collection. All writes go through the store's serialization boundary,
// so the availability check and the insert are atomic with respect to
// concurrent admissions.
type Manager struct {
	store  *store.Serialized
	inv    occupancy.Inventory
	policy occupancy.Policy
	now    func() time.Time
}

func NewManager(st *store.Serialized, inv occupancy.Inventory, countCancelled bool) *Manager {
	return &Manager{
		store:  st,
		inv:    inv,
		policy: occupancy.Policy{CountCancelled: countCancelled},
		now:    time.Now,
	}
}

// CreateRequest is the member-facing reservation request body.
type CreateRequest struct {
	ReservationDate string                 `json:"reservationDate"`
	NumberOfDays    int                    `json:"numberOfDays"`
	RoomSelections  []models.RoomSelection `json:"roomSelections"`
}

// Create admits the request against the current snapshot and persists the
// new reservation as pending. The checker's rejection message is surfaced
// verbatim; there is no retry.
func (m *Manager) Create(ctx context.Context, userID string, req CreateRequest) (models.Reservation, error) {
	if req.ReservationDate == "" || req.NumberOfDays == 0 || len(req.RoomSelections) == 0 {
		return models.Reservation{}, apperr.New(apperr.Validation, "Todos los campos son obligatorios.")
	}
	start, err := occupancy.ParseDate(req.ReservationDate)
	if err != nil {
		return models.Reservation{}, err
	}
	selections := occupancy.NormalizeSelections(req.RoomSelections)

	reservation := models.Reservation{
		ID:              uuid.NewString(),
		UserID:          userID,
		ReservationDate: req.ReservationDate,
		NumberOfDays:    req.NumberOfDays,
		RoomSelections:  selections,
		Status:          models.ReservationPending,
		CreatedAt:       m.now().Unix(),
	}

	err = m.store.Update(ctx, func(state *store.State) error {
		check := occupancy.Request{
			StartDate:    start,
			NumberOfDays: req.NumberOfDays,
			Selections:   selections,
		}
		if err := m.policy.Check(m.inv, state.Reservations, check); err != nil {
			return err
		}
		state.Reservations = append(state.Reservations, reservation)
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return reservation, nil
}

// ListMine returns the member's reservations, most recent stay first.
func (m *Manager) ListMine(ctx context.Context, userID string) ([]models.Reservation, error) {
	mine := []models.Reservation{}
	err := m.store.View(ctx, func(state store.State) error {
		for _, res := range state.Reservations {
			if res.UserID == userID {
				mine = append(mine, res)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(mine, func(i, j int) bool {
		if mine[i].ReservationDate != mine[j].ReservationDate {
			return mine[i].ReservationDate > mine[j].ReservationDate
		}
		return mine[i].CreatedAt > mine[j].CreatedAt
	})
	return mine, nil
}

// ListAll returns every reservation annotated with the owner's name.
func (m *Manager) ListAll(ctx context.Context) ([]models.ReservationWithUser, error) {
	all := []models.ReservationWithUser{}
	err := m.store.View(ctx, func(state store.State) error {
		names := make(map[string]string, len(state.Users))
		for _, user := range state.Users {
			names[user.UserID] = user.Name
		}
		for _, res := range state.Reservations {
			name, ok := names[res.UserID]
			if !ok {
				name = "Usuario no encontrado"
			}
			all = append(all, models.ReservationWithUser{Reservation: res, UserName: name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// SetStatus moves a reservation to any valid status. Role authorization
// happens at the route boundary; admins may modify any reservation.
func (m *Manager) SetStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	if !status.Valid() {
		return models.Reservation{}, apperr.New(apperr.Validation, "Estado no válido.")
	}
	var updated models.Reservation
	err := m.store.Update(ctx, func(state *store.State) error {
		for i := range state.Reservations {
			if state.Reservations[i].ID == id {
				state.Reservations[i].Status = status
				updated = state.Reservations[i]
				return nil
			}
		}
		return apperr.New(apperr.NotFound, "Reserva no encontrada.")
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return updated, nil
}

// cancelDeadline is noon on the day before arrival. Stays whose deadline
// has passed can no longer be self-cancelled, regardless of status.
func cancelDeadline(start time.Time) time.Time {
	dayBefore := start.AddDate(0, 0, -1)
	return time.Date(dayBefore.Year(), dayBefore.Month(), dayBefore.Day(), 12, 0, 0, 0, time.UTC)
}

// SelfCancel cancels the member's own pending reservation.
func (m *Manager) SelfCancel(ctx context.Context, userID, id string) error {
	return m.store.Update(ctx, func(state *store.State) error {
		for i := range state.Reservations {
			res := &state.Reservations[i]
			if res.ID != id {
				continue
			}
			if res.UserID != userID {
				return apperr.New(apperr.Forbidden, "No tienes permiso para cancelar esta reserva.")
			}
			if !res.Status.OwnerCancellable() {
				return apperr.New(apperr.InvalidTransition,
					"No se puede cancelar una reserva con estado '%s'.", res.Status)
			}
			start, err := occupancy.ParseDate(res.ReservationDate)
			if err != nil {
				return err
			}
			if m.now().After(cancelDeadline(start)) {
				return apperr.New(apperr.Forbidden,
					"El plazo para cancelar venció al mediodía del día anterior a la reserva.")
			}
			res.Status = models.ReservationCancelled
			return nil
		}
		return apperr.New(apperr.NotFound, "Reserva no encontrada.")
	})
}

// OccupiedDates reports every date on which all room categories are at
// full inventory, for disabling in the booking calendar.
func (m *Manager) OccupiedDates(ctx context.Context) ([]string, error) {
	var dates []string
	err := m.store.View(ctx, func(state store.State) error {
		dates = m.policy.FullyOccupiedDates(m.inv, state.Reservations)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dates, nil
}
