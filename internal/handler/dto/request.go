package dto

// CreatePersonRequest represents the request body for POST /persons.
type CreatePersonRequest struct {
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// CreateAddressRequest represents the request body for POST /persons/{id}/addresses.
// A non-empty TreeName also orders that tree for the person.
type CreateAddressRequest struct {
	City     *string `json:"city,omitempty"`
	PinCode  *string `json:"pin_code,omitempty"`
	State    *string `json:"state,omitempty"`
	District *string `json:"district,omitempty"`
	TreeName *string `json:"tree_name,omitempty"`
}

// OrderTreeRequest represents the request body for POST /orders/tree.
type OrderTreeRequest struct {
	TreeName string `json:"tree_name"`
	PersonID int64  `json:"person_id"`
}
