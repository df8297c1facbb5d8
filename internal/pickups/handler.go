package pickups

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecopickup-service/pkg/token"
)

// Handler exposes pickup HTTP endpoints.
type Handler struct{ svc *Service }

// NewHandler wires a handler to the pickup service.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Routes returns a chi.Router with all pickup routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(token.RequireAuth) // all pickup endpoints need auth

	r.Post("/", h.Schedule)
	r.Get("/", h.List)
	r.Get("/stats", h.GetStats) // must come before /{id}
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}/cancel", h.Cancel)
	r.Patch("/{id}/complete", h.Complete)

	return r
}

func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	p, err := h.svc.Schedule(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		// The store no-ops without an active session; surface that here.
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if list == nil {
		list = []Pickup{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pickups": list, "count": len(list)})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pickup not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pickup not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	// body is optional
	json.NewDecoder(r.Body).Decode(&req)

	p, err := h.svc.Complete(r.Context(), chi.URLParam(r, "id"), req.PointsEarned)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pickup not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
