package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/treelife/internal/domain"
)

var treeColumns = []string{
	"id", "name", "stock_available", "persons_ordered", "created_at", "updated_at",
}

// TreeRepository handles database operations for trees.
type TreeRepository struct {
	pool *pgxpool.Pool
}

// NewTreeRepository creates a new TreeRepository.
func NewTreeRepository(pool *pgxpool.Pool) *TreeRepository {
	return &TreeRepository{pool: pool}
}

func scanTree(row pgx.Row) (*domain.Tree, error) {
	var tree domain.Tree
	err := row.Scan(
		&tree.ID,
		&tree.Name,
		&tree.StockAvailable,
		&tree.PersonsOrdered,
		&tree.CreatedAt,
		&tree.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTreeNotFound
		}
		return nil, fmt.Errorf("scan tree: %w", err)
	}
	return &tree, nil
}

// ListAvailable returns trees that still have stock, ordered by id.
func (r *TreeRepository) ListAvailable(ctx context.Context) ([]*domain.Tree, error) {
	query, args, err := psql.
		Select(treeColumns...).
		From("trees").
		Where("stock_available > persons_ordered").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListAvailable query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query available trees: %w", err)
	}
	defer rows.Close()

	trees := []*domain.Tree{}
	for rows.Next() {
		tree, err := scanTree(rows)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return trees, nil
}

// GetByID retrieves a tree by ID.
func (r *TreeRepository) GetByID(ctx context.Context, treeID int64) (*domain.Tree, error) {
	query, args, err := psql.
		Select(treeColumns...).
		From("trees").
		Where(sq.Eq{"id": treeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for tree %d: %w", treeID, err)
	}

	return scanTree(r.pool.QueryRow(ctx, query, args...))
}

// GetByNameForUpdate retrieves a tree by name and locks the row until tx ends.
func (r *TreeRepository) GetByNameForUpdate(ctx context.Context, tx pgx.Tx, name string) (*domain.Tree, error) {
	query, args, err := psql.
		Select(treeColumns...).
		From("trees").
		Where(sq.Eq{"name": name}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByNameForUpdate query: %w", err)
	}

	return scanTree(tx.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a tree by ID and locks the row until tx ends.
func (r *TreeRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, treeID int64) (*domain.Tree, error) {
	query, args, err := psql.
		Select(treeColumns...).
		From("trees").
		Where(sq.Eq{"id": treeID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for tree %d: %w", treeID, err)
	}

	return scanTree(tx.QueryRow(ctx, query, args...))
}

// IncrementOrdered records one more order against the tree.
func (r *TreeRepository) IncrementOrdered(ctx context.Context, tx pgx.Tx, treeID int64) error {
	return r.updateOrdered(ctx, tx, treeID, sq.Expr("persons_ordered + 1"))
}

// DecrementOrdered removes one order from the tree, never going below zero.
func (r *TreeRepository) DecrementOrdered(ctx context.Context, tx pgx.Tx, treeID int64) error {
	return r.updateOrdered(ctx, tx, treeID, sq.Expr("GREATEST(persons_ordered - 1, 0)"))
}

func (r *TreeRepository) updateOrdered(ctx context.Context, tx pgx.Tx, treeID int64, value sq.Sqlizer) error {
	query, args, err := psql.
		Update("trees").
		Set("persons_ordered", value).
		Where(sq.Eq{"id": treeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build persons_ordered update for tree %d: %w", treeID, err)
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update persons_ordered: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTreeNotFound
	}
	return nil
}
