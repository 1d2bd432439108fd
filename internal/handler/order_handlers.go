package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/treelife/internal/handler/dto"
)

// handlePlaceOrder orders a tree for a person.
// @Summary Order a tree
// @Description Locks the tree and the person, checks stock and existing orders, and records the order atomically.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body dto.OrderTreeRequest true "Order request"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /orders/tree [post]
func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderTreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.TreeName == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "tree_name is required")
		return
	}
	if req.PersonID == 0 {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "person_id is required")
		return
	}

	result, err := h.orderService.PlaceOrder(r.Context(), req.TreeName, req.PersonID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.OrderResponse{Success: true, TreeID: result.TreeID})
}

// handleCancelOrder cancels the person's tree order.
// @Summary Cancel a tree order
// @Tags orders
// @Produce json
// @Param person_id path int true "Person ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /orders/cancel/{person_id} [delete]
func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	personID, ok := extractID(w, r, "person_id")
	if !ok {
		return
	}

	result, err := h.orderService.CancelOrder(r.Context(), personID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.OrderResponse{
		Success: true,
		TreeID:  result.TreeID,
		Message: result.Message,
	})
}
