package api

import (
	"net/http"

	"github.com/erazemk/najdeno/internal/ai"
	"github.com/erazemk/najdeno/internal/store"
)

// AuthConfig carries the admin credential and token secret into the router.
type AuthConfig struct {
	JWTSecret    string
	AdminEmail   string
	PasswordHash []byte
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(st *store.Store, aiClient *ai.Client, authCfg AuthConfig) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{
		JWTSecret:    authCfg.JWTSecret,
		AdminEmail:   authCfg.AdminEmail,
		PasswordHash: authCfg.PasswordHash,
	}
	itemsHandler := &ItemsHandler{Store: st, AI: aiClient}
	searchHandler := &SearchHandler{Store: st, AI: aiClient}
	claimsHandler := &ClaimsHandler{Store: st}
	adminHandler := &AdminHandler{Store: st}

	authMW := AuthMiddleware(authCfg.JWTSecret)

	// Public: login and the visitor-facing catalog.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/search", searchHandler.Search)
	mux.HandleFunc("POST /api/items/search/semantic", searchHandler.Semantic)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)
	mux.HandleFunc("POST /api/items", itemsHandler.Report)
	mux.HandleFunc("POST /api/analyze", itemsHandler.Analyze)
	mux.HandleFunc("POST /api/items/{id}/claim", claimsHandler.Submit)

	// Admin: triage, corrections, and claim decisions.
	mux.Handle("GET /api/admin/items", authMW(http.HandlerFunc(adminHandler.Triage)))
	mux.Handle("GET /api/admin/stats", authMW(http.HandlerFunc(adminHandler.Stats)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("POST /api/items/{id}/verify", authMW(http.HandlerFunc(claimsHandler.Verify)))
	mux.Handle("POST /api/items/{id}/reject", authMW(http.HandlerFunc(claimsHandler.Reject)))
	mux.Handle("POST /api/items/{id}/return", authMW(http.HandlerFunc(claimsHandler.Return)))

	return mux
}
