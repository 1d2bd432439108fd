package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/treelife/internal/domain"
	"github.com/mtlprog/treelife/internal/repository"
)

// OrderService places and cancels tree orders. Every operation runs in a
// single transaction with the tree and person rows locked.
type OrderService struct {
	pool       *pgxpool.Pool
	personRepo *repository.PersonRepository
	treeRepo   *repository.TreeRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	pool *pgxpool.Pool,
	personRepo *repository.PersonRepository,
	treeRepo *repository.TreeRepository,
) *OrderService {
	return &OrderService{
		pool:       pool,
		personRepo: personRepo,
		treeRepo:   treeRepo,
	}
}

// PlaceOrder orders the tree named treeName for the person.
func (s *OrderService) PlaceOrder(ctx context.Context, treeName string, personID int64) (*domain.OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	tree, err := s.orderInTx(ctx, tx, treeName, personID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("tree ordered",
		"tree_id", tree.ID,
		"tree_name", tree.Name,
		"person_id", personID,
	)

	return &domain.OrderResult{TreeID: tree.ID}, nil
}

// orderInTx locks the tree and the person, checks stock and existing orders,
// then records the order. The caller owns tx.
func (s *OrderService) orderInTx(ctx context.Context, tx pgx.Tx, treeName string, personID int64) (*domain.Tree, error) {
	tree, err := s.treeRepo.GetByNameForUpdate(ctx, tx, treeName)
	if err != nil {
		return nil, err
	}
	if !tree.InStock() {
		return nil, fmt.Errorf("%w: tree %q has %d of %d ordered", domain.ErrTreeOutOfStock, tree.Name, tree.PersonsOrdered, tree.StockAvailable)
	}

	person, err := s.personRepo.GetByIDForUpdate(ctx, tx, personID)
	if err != nil {
		return nil, err
	}
	if person.HasOrdered() {
		return nil, fmt.Errorf("%w: person %d holds tree %d", domain.ErrAlreadyOrdered, person.ID, *person.OrderedTree)
	}

	if err := s.treeRepo.IncrementOrdered(ctx, tx, tree.ID); err != nil {
		return nil, err
	}
	if err := s.personRepo.SetOrderedTree(ctx, tx, person.ID, &tree.ID); err != nil {
		return nil, err
	}

	return tree, nil
}

// CancelOrder releases the person's tree order. When the ordered tree no
// longer exists the person is still cleared and the result carries a message.
func (s *OrderService) CancelOrder(ctx context.Context, personID int64) (*domain.OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	person, err := s.personRepo.GetByIDForUpdate(ctx, tx, personID)
	if err != nil {
		return nil, err
	}
	if !person.HasOrdered() {
		return nil, fmt.Errorf("%w: person %d", domain.ErrNoOrderToCancel, personID)
	}
	treeID := *person.OrderedTree

	result := &domain.OrderResult{TreeID: treeID}

	_, err = s.treeRepo.GetByIDForUpdate(ctx, tx, treeID)
	switch {
	case errors.Is(err, domain.ErrTreeNotFound):
		result.Message = "Order cancelled; tree record missing"
	case err != nil:
		return nil, err
	default:
		if err := s.treeRepo.DecrementOrdered(ctx, tx, treeID); err != nil {
			return nil, err
		}
	}

	if err := s.personRepo.SetOrderedTree(ctx, tx, personID, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("tree order cancelled",
		"tree_id", treeID,
		"person_id", personID,
		"tree_missing", result.Message != "",
	)

	return result, nil
}
