package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"moodtracker/internal/mood"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type MoodHandler struct {
	Svc *mood.Service
}

// Pointer fields make required a presence check, so "" is a valid emoji.
type createMoodReq struct {
	Date     *string `json:"date" validate:"required,isodate"`
	MoodType *string `json:"mood_type" validate:"required"`
	Emoji    *string `json:"emoji" validate:"required"`
	Notes    *string `json:"notes"`
}

// date is accepted for compatibility with clients that resend the whole
// entry, but it is never applied.
type updateMoodReq struct {
	Date     *string `json:"date" validate:"omitempty,isodate"`
	MoodType *string `json:"mood_type" validate:"required"`
	Emoji    *string `json:"emoji" validate:"required"`
	Notes    *string `json:"notes"`
}

type moodEntryDTO struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	MoodType  string    `json:"mood_type"`
	Emoji     string    `json:"emoji"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

type moodOptionsDTO struct {
	Moods []mood.Option `json:"moods"`
}

func toDTO(e *mood.Entry) moodEntryDTO {
	return moodEntryDTO{
		ID:        e.ID,
		Date:      e.Date,
		MoodType:  e.MoodType,
		Emoji:     e.Emoji,
		Notes:     e.Notes,
		Timestamp: e.Timestamp.UTC(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *MoodHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, moodOptionsDTO{Moods: mood.Options()})
}

func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMoodReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.Svc.Create(r.Context(), mood.CreateInput{
		Date:     *req.Date,
		MoodType: *req.MoodType,
		Emoji:    *req.Emoji,
		Notes:    deref(req.Notes),
	})
	if err != nil {
		switch {
		case errors.Is(err, mood.ErrDuplicateDate):
			writeError(w, r, http.StatusBadRequest, "Mood entry already exists for this date", err)
			return
		case errors.Is(err, mood.ErrInvalidDate):
			writeError(w, r, http.StatusUnprocessableEntity, "date must be a date in YYYY-MM-DD format", err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "Error creating mood entry: "+err.Error(), err)
		return
	}

	writeJSON(w, http.StatusCreated, toDTO(e))
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error fetching mood entries: "+err.Error(), err)
		return
	}

	out := make([]moodEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, toDTO(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.entryError(w, r, "Error fetching mood entry: ", err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(e))
}

func (h *MoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateMoodReq
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.Svc.Update(r.Context(), chi.URLParam(r, "id"), mood.UpdateInput{
		MoodType: *req.MoodType,
		Emoji:    *req.Emoji,
		Notes:    deref(req.Notes),
	})
	if err != nil {
		h.entryError(w, r, "Error updating mood entry: ", err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(e))
}

func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.entryError(w, r, "Error deleting mood entry: ", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Mood entry deleted successfully"})
}

func (h *MoodHandler) entryError(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	if errors.Is(err, mood.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Mood entry not found", err)
		return
	}
	writeError(w, r, http.StatusInternalServerError, prefix+err.Error(), err)
}

func (h *MoodHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
	ww.Header().Set("Content-Type", "text/csv")
	ww.Header().Set("Content-Disposition", "attachment; filename="+mood.ExportFilename)

	if err := h.Svc.ExportCSV(r.Context(), ww); err != nil {
		if ww.BytesWritten() == 0 {
			ww.Header().Del("Content-Disposition")
			writeError(ww, r, http.StatusInternalServerError, "Error exporting mood data: "+err.Error(), err)
			return
		}
		// headers are gone; the client sees a truncated file
		slog.Error("csv export aborted mid-stream",
			"request_id", chimw.GetReqID(r.Context()),
			"bytes", ww.BytesWritten(),
			"error", err)
	}
}

func (h *MoodHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.Stats(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Error fetching mood stats: "+err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
