package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"posada/auth"
	"posada/config"
	"posada/foodorders"
	"posada/globals"
	"posada/live"
	"posada/menu"
	"posada/ratelim"
	"posada/rdx"
	"posada/reservations"
	"posada/routes"
	"posada/store"
	"posada/store/memory"
	"posada/store/mongostore"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func()) {
	if cfg.MongoURI == "" {
		log.Println("MONGODB_URI not set; using in-memory store (state is lost on restart)")
		return memory.New(), func() {}
	}
	st, client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ MongoDB connect error: %v", err)
	}
	return st, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}
}

func main() {
	cfg := config.Load()
	if cfg.JWTSecret != "" {
		globals.JwtSecret = []byte(cfg.JWTSecret)
	}

	backend, closeStore := openStore(context.Background(), cfg)
	defer closeStore()
	serialized := store.NewSerialized(backend)

	rdx.Init(cfg.RedisURL)
	go live.Run()

	rateLimiter := ratelim.NewRateLimiter()

	authHandler := auth.NewHandler(serialized)
	reservationMgr := reservations.NewManager(serialized, cfg.Inventory, cfg.CountCancelled)
	reservationHandler := reservations.NewHandler(reservationMgr)
	orderMgr := foodorders.NewManager(serialized, cfg)
	orderHandler := foodorders.NewHandler(orderMgr)
	menuHandler := menu.NewHandler(cfg)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddReservationRoutes(router, reservationHandler, rateLimiter)
	routes.AddFoodRoutes(router, menuHandler, orderHandler, rateLimiter)
	routes.AddLiveRoutes(router)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
