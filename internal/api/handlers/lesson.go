package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/coursify/marketplace-api/internal/api/middleware"
	"github.com/coursify/marketplace-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type LessonHandler struct {
	lessonService *service.LessonService
}

func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

type LessonRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"videoUrl"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	Position        int    `json:"position"`
	DurationMinutes int    `json:"durationMinutes"`
	FreePreview     bool   `json:"freePreview"`
}

func (r LessonRequest) toInput() service.LessonInput {
	return service.LessonInput{
		Title:           r.Title,
		Description:     r.Description,
		VideoURL:        r.VideoURL,
		ThumbnailURL:    r.ThumbnailURL,
		Position:        r.Position,
		DurationMinutes: r.DurationMinutes,
		FreePreview:     r.FreePreview,
	}
}

func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid course id", http.StatusBadRequest)
		return
	}

	var req LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.VideoURL == "" {
		http.Error(w, "Title and video URL are required", http.StatusBadRequest)
		return
	}

	lesson, err := h.lessonService.Create(r.Context(), user, courseID, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lesson)
}

func (h *LessonHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid course id", http.StatusBadRequest)
		return
	}

	lessons, err := h.lessonService.ListByCourse(r.Context(), courseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lessons)
}

func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid lesson id", http.StatusBadRequest)
		return
	}

	var req LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lesson, err := h.lessonService.Update(r.Context(), user, id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid lesson id", http.StatusBadRequest)
		return
	}

	if err := h.lessonService.Delete(r.Context(), user, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
