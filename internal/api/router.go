package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shouna/internal/auth"
	"github.com/erazemk/shouna/internal/chat"
	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/metrics"
)

// Deps carries what the API handlers operate on.
type Deps struct {
	DB         *sql.DB
	Inventory  *inventory.Inventory
	Analyzer   inventory.Analyzer
	Chat       *chat.Transcript
	Passphrase *auth.Passphrase
	JWTSecret  string
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: d.DB, Passphrase: d.Passphrase, JWTSecret: d.JWTSecret}
	locationsHandler := &LocationsHandler{Inventory: d.Inventory}
	itemsHandler := &ItemsHandler{Inventory: d.Inventory}
	inventoryHandler := &InventoryHandler{Inventory: d.Inventory}
	assistantHandler := &AssistantHandler{Inventory: d.Inventory, Analyzer: d.Analyzer, Chat: d.Chat}

	authMW := AuthMiddleware(d.Passphrase, d.JWTSecret, d.DB)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Locations.
	mux.Handle("GET /api/locations", authMW(http.HandlerFunc(locationsHandler.List)))
	mux.Handle("POST /api/locations", authMW(http.HandlerFunc(locationsHandler.Create)))

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	// Shared view and dashboard.
	mux.Handle("GET /api/view", authMW(http.HandlerFunc(inventoryHandler.View)))
	mux.Handle("PUT /api/view", authMW(http.HandlerFunc(inventoryHandler.UpdateView)))
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(inventoryHandler.Dashboard)))

	// Assistant.
	mux.Handle("POST /api/analyze", authMW(http.HandlerFunc(assistantHandler.Analyze)))
	mux.Handle("GET /api/chat", authMW(http.HandlerFunc(assistantHandler.Transcript)))
	mux.Handle("POST /api/chat", authMW(http.HandlerFunc(assistantHandler.Send)))

	return metrics.Middleware(mux)
}

// MetricsHandler serves Prometheus metrics behind the same bearer-token
// check as the API. Scrapers log in through /api/auth/login when a
// passphrase is set.
func MetricsHandler(pass *auth.Passphrase, secret string, db *sql.DB) http.Handler {
	return AuthMiddleware(pass, secret, db)(metrics.Handler())
}
