package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
	"github.com/kekirawacc/kccweb/internal/upload"
)

type AlumniHandler struct {
	alumni *store.AlumniStore
	saver  *upload.Saver
	logger *slog.Logger
}

func NewAlumniHandler(as *store.AlumniStore, saver *upload.Saver, logger *slog.Logger) *AlumniHandler {
	return &AlumniHandler{alumni: as, saver: saver, logger: logger}
}

func (h *AlumniHandler) List(w http.ResponseWriter, r *http.Request) {
	alumni, err := h.alumni.List()
	if err != nil {
		h.logger.Error("list alumni", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list alumni")
		return
	}
	if alumni == nil {
		alumni = []model.Alumni{}
	}
	writeJSON(w, http.StatusOK, alumni)
}

func (h *AlumniHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AlumniHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(maxUploadSize)
	a, ok := h.alumniFromForm(w, r)
	if !ok {
		return
	}
	if _, err := h.alumni.Create(a); err != nil {
		h.logger.Error("create alumni", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create alumni entry")
		return
	}
	http.Redirect(w, r, "/admin/alumni", http.StatusSeeOther)
}

func (h *AlumniHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}

	r.ParseMultipartForm(maxUploadSize)
	a, ok := h.alumniFromForm(w, r)
	if !ok {
		return
	}
	if a.PhotoURL == "" {
		a.PhotoURL = existing.PhotoURL
	}

	if _, err := h.alumni.Update(existing.ID, a); err != nil {
		h.logger.Error("update alumni", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update alumni entry")
		return
	}
	http.Redirect(w, r, "/admin/alumni", http.StatusSeeOther)
}

func (h *AlumniHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.alumni.Delete(existing.ID); err != nil {
		h.logger.Error("delete alumni", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete alumni entry")
		return
	}
	http.Redirect(w, r, "/admin/alumni", http.StatusSeeOther)
}

func (h *AlumniHandler) alumniFromForm(w http.ResponseWriter, r *http.Request) (*model.Alumni, bool) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}
	gradYear, err := strconv.Atoi(r.FormValue("gradYear"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "graduation year is required")
		return nil, false
	}

	photoURL, err := saveFormFile(r, h.saver, "photo")
	if err != nil {
		h.logger.Error("save photo", "error", err)
		writeError(w, http.StatusBadRequest, "could not store photo")
		return nil, false
	}

	return &model.Alumni{
		Name:         name,
		GradYear:     gradYear,
		PhotoURL:     photoURL,
		Headline:     strings.TrimSpace(r.FormValue("headline")),
		Bio:          r.FormValue("bio"),
		Achievements: r.FormValue("achievements"),
		IsFeatured:   r.FormValue("isFeatured") == "true" || r.FormValue("isFeatured") == "on",
		Category:     strings.TrimSpace(r.FormValue("category")),
	}, true
}

func (h *AlumniHandler) load(w http.ResponseWriter, r *http.Request) (*model.Alumni, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	a, err := h.alumni.GetByID(id)
	if err != nil {
		h.logger.Error("get alumni", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load alumni entry")
		return nil, false
	}
	if a == nil {
		http.Redirect(w, r, "/admin/alumni", http.StatusSeeOther)
		return nil, false
	}
	return a, true
}
