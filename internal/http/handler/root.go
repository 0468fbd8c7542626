package handler

import (
	"context"
	"net/http"
	"time"

	"moodtracker/internal/mood"
)

type RootHandler struct {
	Svc *mood.Service
}

func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageBody{Message: "Mood Tracker API"})
}

func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Svc.Ping(ctx); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "storage unavailable", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
