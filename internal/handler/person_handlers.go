package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/treelife/internal/domain"
	"github.com/mtlprog/treelife/internal/handler/dto"
)

// handleEmailExists reports whether a person already uses the email.
// @Summary Check email
// @Tags persons
// @Produce json
// @Param email query string true "Email to look up"
// @Success 200 {object} dto.EmailExistsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /persons/email-exists [get]
func (h *Handler) handleEmailExists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "email query parameter is required")
		return
	}

	exists, err := h.personRepo.EmailExists(r.Context(), email)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.EmailExistsResponse{Exists: exists})
}

// handleCreatePerson creates a new person.
// @Summary Create a person
// @Tags persons
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Person"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /persons [post]
func (h *Handler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	person, err := h.personService.Create(r.Context(), domain.NewPerson{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToPersonResponse(person))
}

// handleGetPerson returns a single person.
// @Summary Get a person
// @Tags persons
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /persons/{id} [get]
func (h *Handler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	person, err := h.personRepo.GetByID(r.Context(), personID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToPersonResponse(person))
}

// handleGetPersonTree returns the person with the ordered tree and addresses.
// @Summary Get a person with tree and addresses
// @Tags persons
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} dto.PersonWithTreeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /persons/{id}/tree [get]
func (h *Handler) handleGetPersonTree(w http.ResponseWriter, r *http.Request) {
	personID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	details, err := h.personService.GetDetails(r.Context(), personID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.PersonWithTreeResponse{
		Person:    dto.ToPersonResponse(details.Person),
		Addresses: dto.ToAddressResponses(details.Addresses),
	}
	if details.Tree != nil {
		tree := dto.ToTreeResponse(details.Tree)
		resp.Tree = &tree
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleGetPersonHasOrder reports whether the person has ordered a tree.
// @Summary Order status
// @Tags persons
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} dto.HasOrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /persons/{id}/has-order [get]
func (h *Handler) handleGetPersonHasOrder(w http.ResponseWriter, r *http.Request) {
	personID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	person, err := h.personRepo.GetByID(r.Context(), personID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.HasOrderResponse{
		HasOrdered: person.HasOrdered(),
		TreeID:     person.OrderedTree,
	})
}

// handleListAddresses returns the person's addresses.
// @Summary List addresses
// @Tags persons
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {array} dto.AddressResponse
// @Router /persons/{id}/addresses [get]
func (h *Handler) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	personID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	addresses, err := h.addressRepo.ListByPerson(r.Context(), personID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToAddressResponses(addresses))
}

// handleCreateAddress adds an address, optionally ordering a tree with it.
// @Summary Add an address
// @Description When tree_name is set the tree is ordered in the same transaction; a failed order stores nothing.
// @Tags persons
// @Accept json
// @Produce json
// @Param id path int true "Person ID"
// @Param request body dto.CreateAddressRequest true "Address"
// @Success 201 {object} dto.AddressInsertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /persons/{id}/addresses [post]
func (h *Handler) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	personID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	var req dto.CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	treeName := ""
	if req.TreeName != nil {
		treeName = *req.TreeName
	}

	result, err := h.personService.AddAddress(r.Context(), domain.NewAddress{
		PersonID: personID,
		City:     req.City,
		PinCode:  req.PinCode,
		State:    req.State,
		District: req.District,
	}, treeName)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AddressInsertResponse{
		AddressID:   result.AddressID,
		TreeOrdered: result.TreeOrdered,
	})
}
