package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/trainer-streaks/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. limiter guards
// the login, registration and share endpoints.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, clients *service.ClientService, gamification *service.GamificationService, limiter *service.RateLimiter, loc *time.Location, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	clientHandler := NewClientHandler(clients, loc)
	gamificationHandler := NewGamificationHandler(gamification)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}
	limited := func(h http.Handler) http.Handler {
		return RateLimit(limiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Auth
	mux.Handle("POST /api/auth/register", limited(http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", limited(http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", protected(authHandler.HandleMe))

	// Roster and records
	mux.Handle("GET /api/clients", protected(clientHandler.HandleList))
	mux.Handle("POST /api/clients", protected(clientHandler.HandleCreate))
	mux.Handle("GET /api/clients/{id}", protected(clientHandler.HandleGet))
	mux.Handle("POST /api/clients/{id}/sessions", protected(clientHandler.HandleRecordSession))
	mux.Handle("POST /api/clients/{id}/progress", protected(clientHandler.HandleRecordProgress))

	// Gamification
	mux.Handle("GET /api/clients/{id}/gamification", protected(gamificationHandler.HandleView))
	mux.Handle("GET /api/clients/{id}/streaks", protected(gamificationHandler.HandleStreaks))
	mux.Handle("GET /api/clients/{id}/badges", protected(gamificationHandler.HandleBadges))
	mux.Handle("POST /api/clients/{id}/streaks/{type}/recover", protected(gamificationHandler.HandleRecover))
	mux.Handle("POST /api/clients/{id}/celebrations/dismiss", protected(gamificationHandler.HandleDismiss))
	mux.Handle("POST /api/clients/{id}/celebrations/share", limited(protected(gamificationHandler.HandleShare)))
	mux.Handle("GET /clients/{id}/celebration", protected(gamificationHandler.HandleCelebrationCard))
}
