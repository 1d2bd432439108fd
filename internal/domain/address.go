package domain

import "time"

// Address is a row of the addresses table.
type Address struct {
	ID        int64
	PersonID  int64
	City      *string
	PinCode   *string
	State     *string
	District  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAddress holds the fields accepted when adding an address to a person.
type NewAddress struct {
	PersonID int64
	City     *string
	PinCode  *string
	State    *string
	District *string
}
