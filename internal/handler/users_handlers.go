package handler

import "net/http"

// handleListUsers returns every row of the persons table as it is stored.
// Each object's keys are the table's column names; nothing is filtered,
// renamed or cached.
// @Summary List users
// @Description Returns all rows of the persons table, one JSON object per row keyed by column name.
// @Tags users
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	records, err := h.personRepo.ListRows(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}
