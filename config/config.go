// Package config loads the process-wide, read-only configuration once at
// startup: server settings, the room inventory table, and the restaurant
// menu catalog.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"posada/models"
	"posada/occupancy"
)

type Config struct {
	Port      string
	JWTSecret string
	MongoURI  string
	MongoDB   string
	RedisURL  string

	Inventory      occupancy.Inventory
	CountCancelled bool
	Menu           []models.MenuItem
}

// Room categories by occupancy size. The identifiers double as the wire
// values in reservation requests.
const (
	RoomSingle = "habitacion_1_persona"
	RoomDouble = "habitacion_2_personas"
	RoomTriple = "habitacion_3_personas"
	RoomQuad   = "habitacion_4_personas"
	RoomQuint  = "habitacion_5_personas"
)

func defaultInventory() occupancy.Inventory {
	return occupancy.Inventory{
		RoomSingle: 10,
		RoomDouble: 15,
		RoomTriple: 5,
		RoomQuad:   5,
		RoomQuint:  5,
	}
}

func defaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "ceviche", Name: "Ceviche Clásico", Price: 35.00},
		{ID: "lomo_saltado", Name: "Lomo Saltado", Price: 45.00},
		{ID: "aji_gallina", Name: "Ají de Gallina", Price: 38.00},
		{ID: "causa", Name: "Causa Limeña", Price: 25.00},
		{ID: "picarones", Name: "Picarones", Price: 18.00},
		{ID: "rocoto_relleno", Name: "Rocoto Relleno", Price: 42.00},
		{ID: "pachamanca", Name: "Pachamanca a la Olla", Price: 55.00},
		{ID: "patasca", Name: "Patasca", Price: 30.00},
		{ID: "cuy_chactado", Name: "Cuy Chactado", Price: 60.00},
		{ID: "caldo_gallina", Name: "Caldo de Gallina", Price: 28.00},
		{ID: "chairo", Name: "Chairo", Price: 32.00},
	}
}

// Load reads .env if present and builds the configuration. Room counts
// can be overridden per category via ROOMS_<N>_PERSONAS env vars.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := &Config{
		Port:           envOr("PORT", ":8080"),
		JWTSecret:      envOr("JWT_SECRET", ""),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDB:        envOr("MONGODB_DB", "posada"),
		RedisURL:       os.Getenv("REDIS_URL"),
		Inventory:      defaultInventory(),
		CountCancelled: envBool("COUNT_CANCELLED_RESERVATIONS", false),
		Menu:           defaultMenu(),
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set; tokens will use an insecure default")
	}

	overrides := map[string]string{
		RoomSingle: "ROOMS_1_PERSONA",
		RoomDouble: "ROOMS_2_PERSONAS",
		RoomTriple: "ROOMS_3_PERSONAS",
		RoomQuad:   "ROOMS_4_PERSONAS",
		RoomQuint:  "ROOMS_5_PERSONAS",
	}
	for category, envKey := range overrides {
		if v := os.Getenv(envKey); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				log.Printf("Ignoring %s=%q: room counts must be positive integers", envKey, v)
				continue
			}
			cfg.Inventory[category] = n
		}
	}

	return cfg
}

// MenuItem looks a dish up by id in the static catalog.
func (c *Config) MenuItem(id string) (models.MenuItem, bool) {
	for _, item := range c.Menu {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
