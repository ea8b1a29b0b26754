package routes

import (
	"github.com/julienschmidt/httprouter"

	"posada/auth"
	"posada/foodorders"
	"posada/live"
	"posada/menu"
	"posada/middleware"
	"posada/ratelim"
	"posada/reservations"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.GET("/api/profile", middleware.Authenticate(h.Profile))
}

func AddReservationRoutes(router *httprouter.Router, h *reservations.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/reservations", rl.Limit(middleware.Authenticate(h.CreateReservation)))
	router.GET("/api/reservations/mine", middleware.Authenticate(h.GetMyReservations))
	router.PATCH("/api/reservations/:id/cancel", middleware.Authenticate(h.CancelMyReservation))
	router.GET("/api/reservations/occupied-dates", h.GetOccupiedDates)

	router.GET("/api/admin/reservations", middleware.AdminOnly(h.AdminListReservations))
	router.PATCH("/api/admin/reservations/:id", middleware.AdminOnly(h.AdminSetReservationStatus))
}

func AddFoodRoutes(router *httprouter.Router, mh *menu.Handler, h *foodorders.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/menu", mh.GetMenu)
	router.POST("/api/food-orders", rl.Limit(middleware.Authenticate(h.CreateOrder)))
	router.GET("/api/food-orders/mine", middleware.Authenticate(h.GetMyOrders))
	router.PATCH("/api/food-orders/:id/cancel", middleware.Authenticate(h.CancelMyOrder))

	router.GET("/api/admin/food-orders", middleware.AdminOnly(h.AdminListOrders))
	router.PATCH("/api/admin/food-orders/:id", middleware.AdminOnly(h.AdminSetOrderStatus))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/api/reservations/live", live.HandleWS)
}
