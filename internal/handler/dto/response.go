package dto

import (
	"time"

	"github.com/mtlprog/treelife/internal/domain"
)

// MessageResponse is the body of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// PersonResponse represents a person.
type PersonResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    *string   `json:"last_name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	OrderedTree *int64    `json:"ordered_tree"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TreeResponse represents a tree.
type TreeResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	StockAvailable int       `json:"stock_available"`
	PersonsOrdered int       `json:"persons_ordered"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AddressResponse represents an address.
type AddressResponse struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"person_id"`
	City      *string   `json:"city"`
	PinCode   *string   `json:"pin_code"`
	State     *string   `json:"state"`
	District  *string   `json:"district"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonWithTreeResponse is the body of GET /persons/{id}/tree.
type PersonWithTreeResponse struct {
	Person    PersonResponse    `json:"person"`
	Tree      *TreeResponse     `json:"tree"`
	Addresses []AddressResponse `json:"addresses"`
}

// EmailExistsResponse is the body of GET /persons/email-exists.
type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}

// HasOrderResponse is the body of GET /persons/{id}/has-order.
type HasOrderResponse struct {
	HasOrdered bool   `json:"hasOrdered"`
	TreeID     *int64 `json:"treeId"`
}

// AddressInsertResponse is the body of POST /persons/{id}/addresses.
type AddressInsertResponse struct {
	AddressID   int64   `json:"addressId"`
	TreeOrdered bool    `json:"treeOrdered"`
	Message     *string `json:"message"`
}

// OrderResponse is the body of the order endpoints.
type OrderResponse struct {
	Success bool   `json:"success"`
	TreeID  int64  `json:"tree_id"`
	Message string `json:"message,omitempty"`
}

// ToPersonResponse converts domain.Person to PersonResponse.
func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		OrderedTree: p.OrderedTree,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToTreeResponse converts domain.Tree to TreeResponse.
func ToTreeResponse(t *domain.Tree) TreeResponse {
	return TreeResponse{
		ID:             t.ID,
		Name:           t.Name,
		StockAvailable: t.StockAvailable,
		PersonsOrdered: t.PersonsOrdered,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTreeResponses converts a list of trees, never returning nil.
func ToTreeResponses(trees []*domain.Tree) []TreeResponse {
	out := make([]TreeResponse, len(trees))
	for i, t := range trees {
		out[i] = ToTreeResponse(t)
	}
	return out
}

// ToAddressResponses converts a list of addresses, never returning nil.
func ToAddressResponses(addresses []*domain.Address) []AddressResponse {
	out := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = AddressResponse{
			ID:        a.ID,
			PersonID:  a.PersonID,
			City:      a.City,
			PinCode:   a.PinCode,
			State:     a.State,
			District:  a.District,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
	}
	return out
}
