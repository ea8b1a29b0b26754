// Package foodorders implements the restaurant order lifecycle. It
// mirrors the reservation lifecycle: ownership-checked self-cancel from
// the initial status only, admin free movement between statuses.
package foodorders

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"posada/apperr"
	"posada/config"
	"posada/models"
	"posada/store"
)

type Manager struct {
	store *store.Serialized
	cfg   *config.Config
	now   func() time.Time
}

func NewManager(st *store.Serialized, cfg *config.Config) *Manager {
	return &Manager{store: st, cfg: cfg, now: time.Now}
}

// Create validates the items against the menu catalog and persists the
// order as received.
func (m *Manager) Create(ctx context.Context, userID string, items []models.OrderItem) (models.FoodOrder, error) {
	if len(items) == 0 {
		return models.FoodOrder{}, apperr.New(apperr.Validation, "El pedido no puede estar vacío.")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return models.FoodOrder{}, apperr.New(apperr.Validation,
				"Cantidad no válida para el plato '%s'.", item.ItemID)
		}
		if _, ok := m.cfg.MenuItem(item.ItemID); !ok {
			return models.FoodOrder{}, apperr.New(apperr.Validation, "Plato no válido: %s.", item.ItemID)
		}
	}

	order := models.FoodOrder{
		ID:        uuid.NewString(),
		UserID:    userID,
		OrderDate: m.now().UTC(),
		Items:     items,
		Status:    models.OrderReceived,
	}

	err := m.store.Update(ctx, func(state *store.State) error {
		state.FoodOrders = append(state.FoodOrders, order)
		return nil
	})
	if err != nil {
		return models.FoodOrder{}, err
	}
	return order, nil
}

// enrich joins order lines with the menu catalog and computes the total
// at the full menu price.
func (m *Manager) enrich(order models.FoodOrder) models.FoodOrderDetail {
	detail := models.FoodOrderDetail{
		ID:        order.ID,
		UserID:    order.UserID,
		OrderDate: order.OrderDate,
		Status:    order.Status,
		Items:     make([]models.OrderItemDetail, 0, len(order.Items)),
	}
	for _, line := range order.Items {
		name := "Plato no encontrado"
		if item, ok := m.cfg.MenuItem(line.ItemID); ok {
			name = item.Name
			detail.Total += item.Price * float64(line.Quantity)
		}
		detail.Items = append(detail.Items, models.OrderItemDetail{OrderItem: line, Name: name})
	}
	return detail
}

// ListMine returns the member's orders with item names and totals, most
// recent first.
func (m *Manager) ListMine(ctx context.Context, userID string) ([]models.FoodOrderDetail, error) {
	mine := []models.FoodOrderDetail{}
	err := m.store.View(ctx, func(state store.State) error {
		for _, order := range state.FoodOrders {
			if order.UserID == userID {
				mine = append(mine, m.enrich(order))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].OrderDate.After(mine[j].OrderDate) })
	return mine, nil
}

// ListAll returns every order with item names, totals, and the owner's
// name, most recent first.
func (m *Manager) ListAll(ctx context.Context) ([]models.FoodOrderDetail, error) {
	all := []models.FoodOrderDetail{}
	err := m.store.View(ctx, func(state store.State) error {
		names := make(map[string]string, len(state.Users))
		for _, user := range state.Users {
			names[user.UserID] = user.Name
		}
		for _, order := range state.FoodOrders {
			detail := m.enrich(order)
			detail.UserName = names[order.UserID]
			if detail.UserName == "" {
				detail.UserName = "Usuario Desconocido"
			}
			all = append(all, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })
	return all, nil
}

// SetStatus moves an order to any valid status; the kitchen works in
// whatever order it needs, so no transition matrix is enforced here.
func (m *Manager) SetStatus(ctx context.Context, id string, status models.OrderStatus) (models.FoodOrder, error) {
	if !status.Valid() {
		return models.FoodOrder{}, apperr.New(apperr.Validation, "Estado no válido.")
	}
	var updated models.FoodOrder
	err := m.store.Update(ctx, func(state *store.State) error {
		for i := range state.FoodOrders {
			if state.FoodOrders[i].ID == id {
				state.FoodOrders[i].Status = status
				updated = state.FoodOrders[i]
				return nil
			}
		}
		return apperr.New(apperr.NotFound, "Pedido no encontrado.")
	})
	if err != nil {
		return models.FoodOrder{}, err
	}
	return updated, nil
}

// SelfCancel cancels the member's own order while it is still received.
func (m *Manager) SelfCancel(ctx context.Context, userID, id string) error {
	return m.store.Update(ctx, func(state *store.State) error {
		for i := range state.FoodOrders {
			order := &state.FoodOrders[i]
			if order.ID != id {
				continue
			}
			if order.UserID != userID {
				return apperr.New(apperr.Forbidden, "No tienes permiso para cancelar este pedido.")
			}
			if !order.Status.OwnerCancellable() {
				return apperr.New(apperr.InvalidTransition,
					"No se puede cancelar un pedido con estado '%s'.", order.Status)
			}
			order.Status = models.OrderCancelled
			return nil
		}
		return apperr.New(apperr.NotFound, "Pedido no encontrado.")
	})
}
