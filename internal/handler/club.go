package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
	"github.com/kekirawacc/kccweb/internal/upload"
)

type ClubHandler struct {
	clubs  *store.ClubStore
	saver  *upload.Saver
	logger *slog.Logger
}

func NewClubHandler(cs *store.ClubStore, saver *upload.Saver, logger *slog.Logger) *ClubHandler {
	return &ClubHandler{clubs: cs, saver: saver, logger: logger}
}

func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubs.List()
	if err != nil {
		h.logger.Error("list clubs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list clubs")
		return
	}
	if clubs == nil {
		clubs = []model.Club{}
	}
	writeJSON(w, http.StatusOK, clubs)
}

func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	club, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(maxUploadSize)
	club, ok := h.clubFromForm(w, r)
	if !ok {
		return
	}
	if _, err := h.clubs.Create(club); err != nil {
		h.logger.Error("create club", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create club")
		return
	}
	http.Redirect(w, r, "/admin/clubs", http.StatusSeeOther)
}

func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}

	r.ParseMultipartForm(maxUploadSize)
	club, ok := h.clubFromForm(w, r)
	if !ok {
		return
	}
	if club.CoverImage == "" {
		club.CoverImage = existing.CoverImage
	}
	if club.LogoImage == "" {
		club.LogoImage = existing.LogoImage
	}

	if _, err := h.clubs.Update(existing.ID, club); err != nil {
		h.logger.Error("update club", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update club")
		return
	}
	http.Redirect(w, r, "/admin/clubs", http.StatusSeeOther)
}

func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.clubs.Delete(existing.ID); err != nil {
		h.logger.Error("delete club", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete club")
		return
	}
	http.Redirect(w, r, "/admin/clubs", http.StatusSeeOther)
}

func (h *ClubHandler) clubFromForm(w http.ResponseWriter, r *http.Request) (*model.Club, bool) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}

	coverImage, err := saveFormFile(r, h.saver, "coverImage")
	if err != nil {
		h.logger.Error("save cover image", "error", err)
		writeError(w, http.StatusBadRequest, "could not store cover image")
		return nil, false
	}
	logoImage, err := saveFormFile(r, h.saver, "logoImage")
	if err != nil {
		h.logger.Error("save logo image", "error", err)
		writeError(w, http.StatusBadRequest, "could not store logo image")
		return nil, false
	}

	return &model.Club{
		Name:             name,
		ShortName:        strings.TrimSpace(r.FormValue("shortName")),
		Category:         strings.TrimSpace(r.FormValue("category")),
		Description:      r.FormValue("description"),
		CoverImage:       coverImage,
		LogoImage:        logoImage,
		TeacherInCharge:  r.FormValue("teacherInCharge"),
		CommitteeMembers: r.FormValue("committeeMembers"),
	}, true
}

func (h *ClubHandler) load(w http.ResponseWriter, r *http.Request) (*model.Club, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	club, err := h.clubs.GetByID(id)
	if err != nil {
		h.logger.Error("get club", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load club")
		return nil, false
	}
	if club == nil {
		http.Redirect(w, r, "/admin/clubs", http.StatusSeeOther)
		return nil, false
	}
	return club, true
}
