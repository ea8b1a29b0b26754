package reservations

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"posada/models"
	"posada/mq"
	"posada/rdx"
	"posada/utils"
)

const occupiedDatesCacheKey = "occupied-dates"

// Handler exposes the manager over httprouter.
type Handler struct {
	Mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{Mgr: mgr}
}

// POST /api/reservations
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Todos los campos son obligatorios.")
		return
	}
	userID := utils.GetUserIDFromRequest(r)

	reservation, err := h.Mgr.Create(r.Context(), userID, req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	rdx.RdxDel(occupiedDatesCacheKey)
	go mq.Emit("reservation-created", reservation.ID, userID, string(reservation.Status))

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":     "Reserva realizada con éxito. Nos pondremos en contacto para confirmar.",
		"reservation": reservation,
	})
}

// GET /api/reservations/mine
func (h *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	mine, err := h.Mgr.ListMine(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, mine)
}

// PATCH /api/reservations/:id/cancel
func (h *Handler) CancelMyReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	if err := h.Mgr.SelfCancel(r.Context(), userID, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	rdx.RdxDel(occupiedDatesCacheKey)
	go mq.Emit("reservation-cancelled", id, userID, string(models.ReservationCancelled))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Reserva cancelada con éxito."})
}

// GET /api/reservations/occupied-dates
func (h *Handler) GetOccupiedDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(occupiedDatesCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, cached)
		return
	}

	dates, err := h.Mgr.OccupiedDates(r.Context())
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if data, err := json.Marshal(dates); err == nil {
		rdx.RdxSet(occupiedDatesCacheKey, string(data), 5*time.Minute)
	}
	utils.RespondWithJSON(w, http.StatusOK, dates)
}

// GET /api/admin/reservations
func (h *Handler) AdminListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all, err := h.Mgr.ListAll(r.Context())
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, all)
}

// PATCH /api/admin/reservations/:id
func (h *Handler) AdminSetReservationStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status models.ReservationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Estado no válido.")
		return
	}

	updated, err := h.Mgr.SetStatus(r.Context(), ps.ByName("id"), body.Status)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	rdx.RdxDel(occupiedDatesCacheKey)
	go mq.Emit("reservation-status", updated.ID, updated.UserID, string(updated.Status))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":     "Estado de la reserva actualizado con éxito.",
		"reservation": updated,
	})
}
