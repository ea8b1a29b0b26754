// Package menu serves the restaurant menu. Prices come from the static
// catalog; the member price is computed on every read and cached as the
// rendered JSON.
package menu

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"posada/config"
	"posada/models"
	"posada/rdx"
	"posada/utils"
)

const menuCacheKey = "menu:list"

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// GET /api/menu
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(menuCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, cached)
		return
	}

	priced := make([]models.PricedMenuItem, 0, len(h.cfg.Menu))
	for _, item := range h.cfg.Menu {
		priced = append(priced, models.PricedMenuItem{
			MenuItem:    item,
			MemberPrice: item.MemberPrice(),
		})
	}

	if data, err := json.Marshal(priced); err == nil {
		rdx.RdxSet(menuCacheKey, string(data), time.Hour)
	}
	utils.RespondWithJSON(w, http.StatusOK, priced)
}
