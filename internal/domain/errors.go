package domain

import "errors"

// Domain-specific errors returned by repositories and services.
var (
	// Person errors
	ErrPersonNotFound    = errors.New("person not found")
	ErrEmailExists       = errors.New("email already exists")
	ErrFirstNameRequired = errors.New("first_name is required")

	// Tree errors
	ErrTreeNotFound   = errors.New("tree not found")
	ErrTreeOutOfStock = errors.New("tree out of stock")

	// Order errors
	ErrAlreadyOrdered  = errors.New("person already has an ordered tree")
	ErrNoOrderToCancel = errors.New("no order to cancel")
)
