package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/service"
	"github.com/msomdec/trainer-streaks/internal/view"
)

// GamificationHandler serves streaks, badges and milestone celebrations.
type GamificationHandler struct {
	gamification *service.GamificationService
}

// NewGamificationHandler creates a new GamificationHandler.
func NewGamificationHandler(gamification *service.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamification: gamification}
}

// HandleView returns the client's full gamification view.
// GET /api/clients/{id}/gamification
func (h *GamificationHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	g, err := h.gamification.ForClient(r.Context(), user.ID, clientID)
	if err != nil {
		writeServiceError(w, err, "load gamification")
		return
	}

	writeJSON(w, http.StatusOK, toGamificationDTO(g))
}

// HandleStreaks returns the client's streaks and the top streak.
// GET /api/clients/{id}/streaks
// Response: {"streaks": [...], "topStreak": {...}, "hasStreak": true}
func (h *GamificationHandler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	streaks, err := h.gamification.Streaks(r.Context(), user.ID, clientID)
	if err != nil {
		writeServiceError(w, err, "derive streaks")
		return
	}

	top, hasStreak := service.PlaceholderStreak(clientID), false
	if t := service.TopStreak(streaks); t != nil {
		top, hasStreak = *t, true
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"streaks":   toStreakDTOs(streaks),
		"topStreak": toStreakDTO(&top),
		"hasStreak": hasStreak,
	})
}

// HandleBadges returns the client's evaluated badge catalogue.
// GET /api/clients/{id}/badges
// Response: {"badges": [...], "nextBadge": {...}}
func (h *GamificationHandler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	g, err := h.gamification.ForClient(r.Context(), user.ID, clientID)
	if err != nil {
		writeServiceError(w, err, "evaluate badges")
		return
	}

	resp := map[string]any{"badges": toBadgeDTOs(g.Badges), "nextBadge": nil}
	if g.NextBadge != nil {
		resp["nextBadge"] = toBadgeDTO(g.NextBadge)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRecover applies the one-time recovery to a lapsed streak. A streak
// that is not recoverable is left unchanged and reported with recovered=false.
// POST /api/clients/{id}/streaks/{type}/recover
// Response: {"recovered": true, "streak": {...}}; streak is omitted when the
// client has no history of that type.
func (h *GamificationHandler) HandleRecover(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	streakType := domain.StreakType(r.PathValue("type"))
	if streakType != domain.StreakTypeSessionAttendance && streakType != domain.StreakTypeProgressLogging {
		writeError(w, http.StatusBadRequest, "Unknown streak type.")
		return
	}

	streak, recovered, err := h.gamification.Recover(r.Context(), user.ID, clientID, streakType)
	if err != nil {
		writeServiceError(w, err, "recover streak")
		return
	}

	resp := map[string]any{"recovered": recovered}
	if streak != nil {
		resp["streak"] = toStreakDTO(streak)
	}
	writeJSON(w, http.StatusOK, resp)
}

type celebrationRequest struct {
	StreakID string `json:"streakId"`
	Count    int    `json:"count"`
}

// HandleDismiss records a celebration as seen. Safe to repeat.
// POST /api/clients/{id}/celebrations/dismiss
// Request:  {"streakId":"...","count":7}
// Response: {"dismissed": true}
func (h *GamificationHandler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	var req celebrationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	stored, err := h.gamification.Dismiss(r.Context(), user.ID, clientID, strings.TrimSpace(req.StreakID), req.Count)
	if err != nil {
		writeServiceError(w, err, "dismiss celebration")
		return
	}

	if isDatastarRequest(r) {
		h.patchCelebrations(w, r, user.ID, clientID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dismissed": stored})
}

// HandleShare shares a celebration with the client. When push delivery is not
// available the response carries the text for the trainer to copy.
// POST /api/clients/{id}/celebrations/share
// Request:  {"streakId":"...","count":7}
// Response: {"method":"push"|"clipboard","text":"..."}
func (h *GamificationHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	var req celebrationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.gamification.Share(r.Context(), user.ID, clientID, strings.TrimSpace(req.StreakID), req.Count)
	if err != nil {
		writeServiceError(w, err, "share celebration")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"method": result.Method,
		"text":   result.Text,
	})
}

// HandleCelebrationCard streams the celebration card and badge grid as
// datastar element patches.
// GET /clients/{id}/celebration
func (h *GamificationHandler) HandleCelebrationCard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	h.patchCelebrations(w, r, user.ID, clientID)
}

func (h *GamificationHandler) patchCelebrations(w http.ResponseWriter, r *http.Request, trainerID, clientID int64) {
	g, err := h.gamification.ForClient(r.Context(), trainerID, clientID)
	if err != nil {
		writeServiceError(w, err, "load celebrations")
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.CelebrationCard(clientID, g.Celebrations),
		datastar.WithSelectorID(view.CelebrationCardID),
	); err != nil {
		return
	}
	sse.PatchElementTempl(
		view.BadgeGrid(g.Badges),
		datastar.WithSelectorID(view.BadgeGridID),
	)
}

func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
