package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kekirawacc/kccweb/internal/auth"
	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
	"github.com/kekirawacc/kccweb/internal/upload"
)

type EventHandler struct {
	events *store.EventStore
	saver  *upload.Saver
	logger *slog.Logger
}

func NewEventHandler(es *store.EventStore, saver *upload.Saver, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: es, saver: saver, logger: logger}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	var createdByID int64
	if user.Role != model.RoleAdmin {
		createdByID = user.ID
	}

	events, err := h.events.List(createdByID)
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	event, ok := h.loadOwned(w, r, user)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	r.ParseMultipartForm(maxUploadSize)
	event, ok := h.eventFromForm(w, r, user)
	if !ok {
		return
	}
	event.CreatedByID = user.ID

	if _, err := h.events.Create(event); err != nil {
		h.logger.Error("create event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	existing, ok := h.loadOwned(w, r, user)
	if !ok {
		return
	}

	r.ParseMultipartForm(maxUploadSize)
	event, ok := h.eventFromForm(w, r, user)
	if !ok {
		return
	}
	if event.CoverImage == "" {
		event.CoverImage = existing.CoverImage
	}
	event.PublishedAt = existing.PublishedAt

	if _, err := h.events.Update(existing.ID, event); err != nil {
		h.logger.Error("update event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	existing, ok := h.loadOwned(w, r, user)
	if !ok {
		return
	}
	if err := h.events.Delete(existing.ID); err != nil {
		h.logger.Error("delete event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (h *EventHandler) eventFromForm(w http.ResponseWriter, r *http.Request, user *model.AuthUser) (*model.Event, bool) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return nil, false
	}

	startDate, err := time.Parse("2006-01-02T15:04", r.FormValue("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start date is required")
		return nil, false
	}
	var endDate *time.Time
	if v := r.FormValue("endDate"); v != "" {
		t, err := time.Parse("2006-01-02T15:04", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return nil, false
		}
		endDate = &t
	}

	coverImage, err := saveFormFile(r, h.saver, "coverImage")
	if err != nil {
		h.logger.Error("save cover image", "error", err)
		writeError(w, http.StatusBadRequest, "could not store cover image")
		return nil, false
	}

	return &model.Event{
		Title:       title,
		Description: r.FormValue("description"),
		Location:    strings.TrimSpace(r.FormValue("location")),
		StartDate:   startDate,
		EndDate:     endDate,
		CoverImage:  coverImage,
		Category:    strings.TrimSpace(r.FormValue("category")),
		Status:      publishStatus(r.FormValue("status")),
		ClubID:      clubIDFor(user, r.FormValue("clubId")),
	}, true
}

func (h *EventHandler) loadOwned(w http.ResponseWriter, r *http.Request, user *model.AuthUser) (*model.Event, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	event, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load event")
		return nil, false
	}
	if event == nil || (user.Role != model.RoleAdmin && event.CreatedByID != user.ID) {
		http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
		return nil, false
	}
	return event, true
}
