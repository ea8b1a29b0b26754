// Package mq publishes lifecycle events over Redis pub/sub. The admin
// live feed subscribes to the same channel.
package mq

import (
	"encoding/json"
	"log"
	"time"

	"posada/globals"
	"posada/rdx"
)

// Channel carries every reservation and food-order lifecycle event.
const Channel = "lifecycle-events"

// Event describes one lifecycle change.
type Event struct {
	Type     string `json:"type"`     // reservation-created, order-status, ...
	EntityID string `json:"entityId"`
	UserID   string `json:"userId,omitempty"`
	Status   string `json:"status,omitempty"`
	At       int64  `json:"at"`
}

// Emit publishes the event. Callers fire it on a goroutine after the
// write committed; delivery is best-effort.
func Emit(eventType, entityID, userID, status string) {
	if rdx.Conn == nil {
		return
	}
	event := Event{
		Type:     eventType,
		EntityID: entityID,
		UserID:   userID,
		Status:   status,
		At:       time.Now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: failed to marshal event %+v: %v", event, err)
		return
	}
	if err := rdx.Conn.Publish(globals.Ctx, Channel, data).Err(); err != nil {
		log.Printf("mq: failed to publish %s for %s: %v", eventType, entityID, err)
	}
}
