package domain

import "time"

// Person is a row of the persons table.
type Person struct {
	ID          int64
	FirstName   string
	LastName    *string
	Email       *string
	Phone       *string
	OrderedTree *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasOrdered reports whether the person currently holds a tree order.
func (p *Person) HasOrdered() bool {
	return p.OrderedTree != nil
}

// NewPerson holds the fields accepted when creating a person.
type NewPerson struct {
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
}
