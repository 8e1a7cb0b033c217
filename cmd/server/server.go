// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtflow-mx/courtflow/internal/api"
	availabilityapi "github.com/courtflow-mx/courtflow/internal/api/availability"
	"github.com/courtflow-mx/courtflow/internal/booking"
	"github.com/courtflow-mx/courtflow/internal/config"
)

func newServer(cfg *config.Config, availability *booking.Service) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithJSONContentType,
	)

	registerRoutes(router, availability)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, availability *booking.Service) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Availability routes
	handler := availabilityapi.NewHandler(availability)
	mux.HandleFunc("GET /api/v1/availability/slots", handler.HandleFreeSlots)
	mux.HandleFunc("GET /api/v1/availability/check", handler.HandleCheckSlot)
}
