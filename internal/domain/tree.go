package domain

import "time"

// Tree is a row of the trees table.
type Tree struct {
	ID             int64
	Name           string
	StockAvailable int
	PersonsOrdered int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InStock reports whether at least one more person can order this tree.
func (t *Tree) InStock() bool {
	return t.StockAvailable > t.PersonsOrdered
}
