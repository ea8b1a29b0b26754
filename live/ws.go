// Package live streams reservation and food-order lifecycle events to
// connected admin dashboards over WebSocket. Events arrive through the
// Redis channel that mq publishes to, so every server instance sees
// every event.
package live

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"posada/globals"
	"posada/middleware"
	"posada/models"
	"posada/mq"
	"posada/rdx"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	subscribers []*websocket.Conn
	mu          sync.Mutex
)

// HandleWS upgrades an admin connection and keeps it subscribed until
// the client disconnects. Browsers cannot set headers on WebSocket
// dials, so the token may also arrive as a query parameter.
func HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			header = "Bearer " + token
		}
	}
	claims, err := middleware.ValidateJWT(header)
	if err != nil || claims.Role != models.RoleAdmin {
		http.Error(w, "No tienes permisos para acceder a esta información.", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers = append(subscribers, conn)
	mu.Unlock()

	for {
		// keeps the connection open until the client goes away
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	remaining := make([]*websocket.Conn, 0, len(subscribers))
	for _, c := range subscribers {
		if c != conn {
			remaining = append(remaining, c)
		}
	}
	subscribers = remaining
	mu.Unlock()

	conn.Close()
}

func broadcast(data []byte) {
	mu.Lock()
	defer mu.Unlock()

	alive := subscribers[:0]
	for _, conn := range subscribers {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			alive = append(alive, conn)
		} else {
			conn.Close()
		}
	}
	subscribers = alive
}

// Run forwards lifecycle events from Redis to connected dashboards.
// Returns immediately when Redis is not configured.
func Run() {
	if rdx.Conn == nil {
		return
	}
	sub := rdx.Conn.Subscribe(globals.Ctx, mq.Channel)
	log.Println("live: listening for lifecycle events")
	for msg := range sub.Channel() {
		broadcast([]byte(msg.Payload))
	}
}
