package handler

import (
	"net/http"

	"github.com/mtlprog/treelife/internal/handler/dto"
)

// handleAvailableTrees lists trees that can still be ordered.
// @Summary Available trees
// @Tags trees
// @Produce json
// @Success 200 {array} dto.TreeResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trees/available [get]
func (h *Handler) handleAvailableTrees(w http.ResponseWriter, r *http.Request) {
	trees, err := h.treeRepo.ListAvailable(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTreeResponses(trees))
}
