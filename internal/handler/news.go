package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kekirawacc/kccweb/internal/auth"
	"github.com/kekirawacc/kccweb/internal/model"
	"github.com/kekirawacc/kccweb/internal/store"
	"github.com/kekirawacc/kccweb/internal/upload"
)

type NewsHandler struct {
	news   *store.NewsStore
	saver  *upload.Saver
	logger *slog.Logger
}

func NewNewsHandler(ns *store.NewsStore, saver *upload.Saver, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{news: ns, saver: saver, logger: logger}
}

// List shows all posts to admins and only the caller's own posts to
// authors and club reps.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	var authorID int64
	if user.Role != model.RoleAdmin {
		authorID = user.ID
	}

	posts, err := h.news.List(authorID)
	if err != nil {
		h.logger.Error("list news", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list news posts")
		return
	}
	if posts == nil {
		posts = []model.NewsPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	post, ok := h.loadOwned(w, r, user)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	r.ParseMultipartForm(maxUploadSize)
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	coverImage, err := saveFormFile(r, h.saver, "coverImage")
	if err != nil {
		h.logger.Error("save cover image", "error", err)
		writeError(w, http.StatusBadRequest, "could not store cover image")
		return
	}

	post := &model.NewsPost{
		Title:        title,
		Excerpt:      strings.TrimSpace(r.FormValue("excerpt")),
		MetaKeywords: strings.TrimSpace(r.FormValue("metaKeywords")),
		Content:      r.FormValue("content"),
		CoverImage:   coverImage,
		Status:       publishStatus(r.FormValue("status")),
		AuthorID:     user.ID,
		ClubID:       clubIDFor(user, r.FormValue("clubId")),
	}

	if _, err := h.news.Create(post); err != nil {
		h.logger.Error("create news", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create news post")
		return
	}
	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	existing, ok := h.loadOwned(w, r, user)
	if !ok {
		return
	}

	r.ParseMultipartForm(maxUploadSize)
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	coverImage, err := saveFormFile(r, h.saver, "coverImage")
	if err != nil {
		h.logger.Error("save cover image", "error", err)
		writeError(w, http.StatusBadRequest, "could not store cover image")
		return
	}
	if coverImage == "" {
		coverImage = existing.CoverImage
	}

	post := &model.NewsPost{
		Title:        title,
		Excerpt:      strings.TrimSpace(r.FormValue("excerpt")),
		MetaKeywords: strings.TrimSpace(r.FormValue("metaKeywords")),
		Content:      r.FormValue("content"),
		CoverImage:   coverImage,
		Status:       publishStatus(r.FormValue("status")),
		PublishedAt:  existing.PublishedAt,
		ClubID:       clubIDFor(user, r.FormValue("clubId")),
	}

	if _, err := h.news.Update(existing.ID, post); err != nil {
		h.logger.Error("update news", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update news post")
		return
	}
	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	existing, ok := h.loadOwned(w, r, user)
	if !ok {
		return
	}
	if err := h.news.Delete(existing.ID); err != nil {
		h.logger.Error("delete news", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete news post")
		return
	}
	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

// loadOwned fetches the post at {id} and enforces that non-admins only
// touch their own posts. Denied or missing posts bounce to the list page.
func (h *NewsHandler) loadOwned(w http.ResponseWriter, r *http.Request, user *model.AuthUser) (*model.NewsPost, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	post, err := h.news.GetByID(id)
	if err != nil {
		h.logger.Error("get news", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load news post")
		return nil, false
	}
	if post == nil || (user.Role != model.RoleAdmin && post.AuthorID != user.ID) {
		http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
		return nil, false
	}
	return post, true
}

func publishStatus(v string) model.PublishStatus {
	if v == string(model.StatusPublished) {
		return model.StatusPublished
	}
	return model.StatusDraft
}

// clubIDFor pins club reps to their own club regardless of what the form
// claims; admins and authors may attach any club or none.
func clubIDFor(user *model.AuthUser, formValue string) *int64 {
	if user.Role == model.RoleClubRep {
		return user.ClubID
	}
	return formInt64Ptr(formValue)
}
