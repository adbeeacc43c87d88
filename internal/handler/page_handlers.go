package handler

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/static"
)

var pageTemplate = template.Must(template.New("page").Parse(static.PageHTML))

// handlePage renders the cat page. An optional ?tab= query selects a panel
// before rendering.
func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sid, err := sessionID(r)
	if err != nil {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	view, err := h.pageService.View(ctx, sid)
	if err != nil {
		h.renderError(w, err)
		return
	}

	if raw := r.URL.Query().Get("tab"); raw != "" {
		tab, err := domain.ParseTab(raw)
		if err != nil {
			h.renderError(w, err)
			return
		}
		if view, err = h.pageService.SelectTab(ctx, sid, tab); err != nil {
			h.renderError(w, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write page", "session_id", sid, "error", err)
	}
}

// handleSelectTabForm handles the tab trigger buttons.
func (h *Handler) handleSelectTabForm(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	tab, err := domain.ParseTab(r.FormValue("tab"))
	if err != nil {
		h.renderError(w, err)
		return
	}

	if _, err := h.pageService.SelectTab(r.Context(), sid, tab); err != nil {
		h.renderError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRateBreedForm handles a click on one of a breed's stars.
func (h *Handler) handleRateBreedForm(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	index, err := extractBreedIndex(r)
	if err != nil {
		h.renderError(w, err)
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		h.renderError(w, domain.ErrInvalidRating)
		return
	}

	if _, err := h.pageService.RateBreed(r.Context(), sid, index, rating); err != nil {
		h.renderError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleShuffleFactForm handles the "Get Another Fun Fact" button.
func (h *Handler) handleShuffleFactForm(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	if _, err := h.pageService.ShuffleFact(r.Context(), sid); err != nil {
		h.renderError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderError writes a plain-text error for the HTML routes.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrBreedNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidRating), errors.Is(err, domain.ErrInvalidTab):
		status, message = http.StatusUnprocessableEntity, err.Error()
	default:
		slog.Error("page request failed", "error", err)
	}

	http.Error(w, message, status)
}
