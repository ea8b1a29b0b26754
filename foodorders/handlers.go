package foodorders

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"posada/models"
	"posada/mq"
	"posada/utils"
)

type Handler struct {
	Mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{Mgr: mgr}
}

// POST /api/food-orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Items []models.OrderItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "El pedido no puede estar vacío.")
		return
	}
	userID := utils.GetUserIDFromRequest(r)

	order, err := h.Mgr.Create(r.Context(), userID, body.Items)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	go mq.Emit("order-created", order.ID, userID, string(order.Status))

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Pedido realizado con éxito.",
		"order":   order,
	})
}

// GET /api/food-orders/mine
func (h *Handler) GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	mine, err := h.Mgr.ListMine(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, mine)
}

// PATCH /api/food-orders/:id/cancel
func (h *Handler) CancelMyOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	if err := h.Mgr.SelfCancel(r.Context(), userID, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	go mq.Emit("order-cancelled", id, userID, string(models.OrderCancelled))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Pedido cancelado con éxito."})
}

// GET /api/admin/food-orders
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all, err := h.Mgr.ListAll(r.Context())
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, all)
}

// PATCH /api/admin/food-orders/:id
func (h *Handler) AdminSetOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status models.OrderStatus `json:"status"`
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

	go mq.Emit("order-status", updated.ID, updated.UserID, string(updated.Status))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Estado del pedido actualizado."})
}
