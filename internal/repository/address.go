package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/treelife/internal/domain"
)

// AddressRepository handles database operations for addresses.
type AddressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository creates a new AddressRepository.
func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// ListByPerson returns the person's addresses ordered by id.
func (r *AddressRepository) ListByPerson(ctx context.Context, personID int64) ([]*domain.Address, error) {
	query, args, err := psql.
		Select("id", "person_id", "city", "pin_code", "state", "district", "created_at", "updated_at").
		From("addresses").
		Where(sq.Eq{"person_id": personID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByPerson query for person %d: %w", personID, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.PersonID,
			&a.City,
			&a.PinCode,
			&a.State,
			&a.District,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return addresses, nil
}

// Create inserts an address within the transaction and returns its id.
func (r *AddressRepository) Create(ctx context.Context, tx pgx.Tx, a domain.NewAddress) (int64, error) {
	query, args, err := psql.
		Insert("addresses").
		Columns("person_id", "city", "pin_code", "state", "district").
		Values(a.PersonID, a.City, a.PinCode, a.State, a.District).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build Create address query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert address: %w", err)
	}
	return id, nil
}
