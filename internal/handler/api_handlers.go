package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/handler/dto"
)

// handleGetState returns the visitor's page state.
// @Summary Get page state
// @Description Returns breeds with ratings, the active tab, the current fun fact and carousel images
// @Tags page
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /state [get]
func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	view, err := h.pageService.View(r.Context(), sid)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStateResponse(view))
}

// handleSelectTab switches the active tab.
// @Summary Select tab
// @Description Switches the visible panel to about, breeds or care
// @Tags page
// @Accept json
// @Produce json
// @Param request body dto.SelectTabRequest true "Tab selection"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tab [put]
func (h *Handler) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req dto.SelectTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tab, err := domain.ParseTab(req.Tab)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	view, err := h.pageService.SelectTab(r.Context(), sid, tab)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStateResponse(view))
}

// handleRateBreed sets a breed's star rating.
// @Summary Rate a breed
// @Description Sets the rating (1-5) of the breed at the given catalog index (0-4)
// @Tags page
// @Accept json
// @Produce json
// @Param index path int true "Breed index"
// @Param request body dto.RateBreedRequest true "Rating"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /breeds/{index}/rating [put]
func (h *Handler) handleRateBreed(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	index, err := extractBreedIndex(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req dto.RateBreedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	view, err := h.pageService.RateBreed(r.Context(), sid, index, req.Rating)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStateResponse(view))
}

// handleShuffleFact picks another random fun fact.
// @Summary Shuffle fun fact
// @Description Picks a new fun fact uniformly at random; it may repeat the current one
// @Tags page
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /fact [post]
func (h *Handler) handleShuffleFact(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	view, err := h.pageService.ShuffleFact(r.Context(), sid)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStateResponse(view))
}
