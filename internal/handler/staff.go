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

type StaffHandler struct {
	staff  *store.StaffStore
	saver  *upload.Saver
	logger *slog.Logger
}

func NewStaffHandler(ss *store.StaffStore, saver *upload.Saver, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{staff: ss, saver: saver, logger: logger}
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.staff.List()
	if err != nil {
		h.logger.Error("list staff", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list staff")
		return
	}
	if members == nil {
		members = []model.StaffMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.ParseMultipartForm(maxUploadSize)
	m, ok := h.staffFromForm(w, r)
	if !ok {
		return
	}
	if _, err := h.staff.Create(m); err != nil {
		h.logger.Error("create staff", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create staff member")
		return
	}
	http.Redirect(w, r, "/admin/staff", http.StatusSeeOther)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}

	r.ParseMultipartForm(maxUploadSize)
	m, ok := h.staffFromForm(w, r)
	if !ok {
		return
	}
	if m.PhotoURL == "" {
		m.PhotoURL = existing.PhotoURL
	}

	if _, err := h.staff.Update(existing.ID, m); err != nil {
		h.logger.Error("update staff", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update staff member")
		return
	}
	http.Redirect(w, r, "/admin/staff", http.StatusSeeOther)
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.staff.Delete(existing.ID); err != nil {
		h.logger.Error("delete staff", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete staff member")
		return
	}
	http.Redirect(w, r, "/admin/staff", http.StatusSeeOther)
}

func (h *StaffHandler) staffFromForm(w http.ResponseWriter, r *http.Request) (*model.StaffMember, bool) {
	name := strings.TrimSpace(r.FormValue("name"))
	roleTitle := strings.TrimSpace(r.FormValue("roleTitle"))
	if name == "" || roleTitle == "" {
		writeError(w, http.StatusBadRequest, "name and role title are required")
		return nil, false
	}

	sortOrder, err := strconv.Atoi(r.FormValue("sortOrder"))
	if err != nil {
		sortOrder = 0
	}

	photoURL, err := saveFormFile(r, h.saver, "photo")
	if err != nil {
		h.logger.Error("save photo", "error", err)
		writeError(w, http.StatusBadRequest, "could not store photo")
		return nil, false
	}

	return &model.StaffMember{
		Name:          name,
		PhotoURL:      photoURL,
		RoleTitle:     roleTitle,
		Department:    strings.TrimSpace(r.FormValue("department")),
		IsInAdminPage: r.FormValue("isInAdminPage") == "true" || r.FormValue("isInAdminPage") == "on",
		SortOrder:     sortOrder,
	}, true
}

func (h *StaffHandler) load(w http.ResponseWriter, r *http.Request) (*model.StaffMember, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	m, err := h.staff.GetByID(id)
	if err != nil {
		h.logger.Error("get staff", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load staff member")
		return nil, false
	}
	if m == nil {
		http.Redirect(w, r, "/admin/staff", http.StatusSeeOther)
		return nil, false
	}
	return m, true
}
