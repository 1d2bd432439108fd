package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/treelife/internal/domain"
	"github.com/mtlprog/treelife/internal/repository"
)

// PersonDetails is a person together with the ordered tree and addresses.
type PersonDetails struct {
	Person    *domain.Person
	Tree      *domain.Tree
	Addresses []*domain.Address
}

// AddressResult reports the outcome of adding an address.
type AddressResult struct {
	AddressID   int64
	TreeOrdered bool
}

// PersonService coordinates person, address and related tree lookups.
type PersonService struct {
	pool        *pgxpool.Pool
	personRepo  *repository.PersonRepository
	treeRepo    *repository.TreeRepository
	addressRepo *repository.AddressRepository
	orders      *OrderService
}

// NewPersonService creates a new PersonService.
func NewPersonService(
	pool *pgxpool.Pool,
	personRepo *repository.PersonRepository,
	treeRepo *repository.TreeRepository,
	addressRepo *repository.AddressRepository,
	orders *OrderService,
) *PersonService {
	return &PersonService{
		pool:        pool,
		personRepo:  personRepo,
		treeRepo:    treeRepo,
		addressRepo: addressRepo,
		orders:      orders,
	}
}

// Create stores a new person. An email already in use is rejected before the
// insert, and a concurrent duplicate is caught by the unique constraint.
func (s *PersonService) Create(ctx context.Context, p domain.NewPerson) (*domain.Person, error) {
	if p.FirstName == "" {
		return nil, domain.ErrFirstNameRequired
	}

	if p.Email != nil && *p.Email != "" {
		exists, err := s.personRepo.EmailExists(ctx, *p.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailExists
		}
	}

	person, err := s.personRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	slog.Info("person created", "person_id", person.ID)

	return person, nil
}

// GetDetails returns the person with the ordered tree (nil when none or when
// the tree row is gone) and all addresses.
func (s *PersonService) GetDetails(ctx context.Context, personID int64) (*PersonDetails, error) {
	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	details := &PersonDetails{Person: person}

	if person.HasOrdered() {
		tree, err := s.treeRepo.GetByID(ctx, *person.OrderedTree)
		if err != nil && !errors.Is(err, domain.ErrTreeNotFound) {
			return nil, fmt.Errorf("get ordered tree: %w", err)
		}
		details.Tree = tree
	}

	details.Addresses, err = s.addressRepo.ListByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	return details, nil
}

// AddAddress inserts an address for the person. When treeName is non-empty
// the tree is ordered in the same transaction, so a failed order inserts nothing.
func (s *PersonService) AddAddress(ctx context.Context, a domain.NewAddress, treeName string) (*AddressResult, error) {
	if _, err := s.personRepo.GetByID(ctx, a.PersonID); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	result := &AddressResult{}

	if treeName != "" {
		if _, err := s.orders.orderInTx(ctx, tx, treeName, a.PersonID); err != nil {
			return nil, err
		}
		result.TreeOrdered = true
	}

	result.AddressID, err = s.addressRepo.Create(ctx, tx, a)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("address added",
		"address_id", result.AddressID,
		"person_id", a.PersonID,
		"tree_ordered", result.TreeOrdered,
	)

	return result, nil
}
