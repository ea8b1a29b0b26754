package models

// ReservationStatus is the lifecycle state of a room reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pendiente"
	ReservationConfirmed ReservationStatus = "confirmado"
	ReservationCancelled ReservationStatus = "cancelado"
)

// Valid reports whether s is one of the recognized reservation statuses.
// Admins may move a reservation between any of these freely; the only
// restricted transition is the owner's own cancel, see OwnerCancellable.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// OwnerCancellable reports whether the owning member may still cancel.
// Owner-initiated cancellation is one-way and only from pending.
func (s ReservationStatus) OwnerCancellable() bool {
	return s == ReservationPending
}

// RoomSelection is one (category, quantity) pair within a reservation.
type RoomSelection struct {
	Type     string `json:"type" bson:"type"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type Reservation struct {
	ID              string            `json:"id" bson:"id"`
	UserID          string            `json:"userId" bson:"userId"`
	ReservationDate string            `json:"reservationDate" bson:"reservationDate"` // YYYY-MM-DD, first night
	NumberOfDays    int               `json:"numberOfDays" bson:"numberOfDays"`
	RoomSelections  []RoomSelection   `json:"roomSelections" bson:"roomSelections"`
	Status          ReservationStatus `json:"status" bson:"status"`
	CreatedAt       int64             `json:"createdAt" bson:"createdAt"`
}

// ReservationWithUser is the admin projection carrying the owner's name.
type ReservationWithUser struct {
	Reservation `bson:",inline"`
	UserName    string `json:"userName" bson:"userName"`
}
