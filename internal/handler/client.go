package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/service"
)

// ClientHandler handles roster and record-keeping HTTP requests.
type ClientHandler struct {
	clients *service.ClientService
	loc     *time.Location
}

// NewClientHandler creates a new ClientHandler. Date-only inputs are
// interpreted as midnight in loc.
func NewClientHandler(clients *service.ClientService, loc *time.Location) *ClientHandler {
	return &ClientHandler{clients: clients, loc: loc}
}

// HandleList returns the trainer's clients.
// GET /api/clients
// Response: {"clients": [...]}
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	clients, err := h.clients.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "list clients")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"clients": toClientDTOs(clients),
	})
}

// HandleCreate adds a client to the trainer's roster.
// POST /api/clients
// Request:  {"name":"...","email":"...","deviceToken":"...","dateJoined":"2024-01-31"}
// Response: {"client": {...}}
func (h *ClientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		DeviceToken string `json:"deviceToken"`
		DateJoined  string `json:"dateJoined"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	joined, err := h.parseDate(req.DateJoined)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	client := &domain.Client{
		Name:        req.Name,
		Email:       strings.TrimSpace(req.Email),
		DeviceToken: strings.TrimSpace(req.DeviceToken),
		DateJoined:  joined,
	}
	if err := h.clients.Create(r.Context(), user.ID, client); err != nil {
		writeServiceError(w, err, "create client")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"client": toClientDTO(client),
	})
}

// HandleGet returns a single client.
// GET /api/clients/{id}
// Response: {"client": {...}}
func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	client, err := h.clients.Get(r.Context(), user.ID, clientID)
	if err != nil {
		writeServiceError(w, err, "get client")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"client": toClientDTO(client),
	})
}

// HandleRecordSession logs a training session.
// POST /api/clients/{id}/sessions
// Request:  {"date":"2024-05-01","status":"completed","notes":"..."}
// Response: {"session": {...}}
func (h *ClientHandler) HandleRecordSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	var req struct {
		Date   string `json:"date"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	date, err := h.parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	session := &domain.TrainingSession{
		ClientID: clientID,
		Date:     date,
		Status:   strings.TrimSpace(req.Status),
		Notes:    req.Notes,
	}
	if err := h.clients.RecordSession(r.Context(), user.ID, session); err != nil {
		writeServiceError(w, err, "record session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session": toSessionDTO(session),
	})
}

// HandleRecordProgress logs a progress entry.
// POST /api/clients/{id}/progress
// Request:  {"date":"2024-05-01","weight":81.5,"notes":"..."}
// Response: {"entry": {...}}
func (h *ClientHandler) HandleRecordProgress(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	clientID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid client ID.")
		return
	}

	var req struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
		Notes  string  `json:"notes"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	date, err := h.parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	entry := &domain.ProgressEntry{
		ClientID: clientID,
		Date:     date,
		Weight:   req.Weight,
		Notes:    req.Notes,
	}
	if err := h.clients.RecordProgress(r.Context(), user.ID, entry); err != nil {
		writeServiceError(w, err, "record progress")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"entry": toProgressDTO(entry),
	})
}

// parseDate accepts RFC 3339 timestamps or YYYY-MM-DD dates. An empty value
// means now.
func (h *ClientHandler) parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, v, h.loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", v)
}
