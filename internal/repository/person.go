package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/treelife/internal/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// personColumns is the shared list of columns for typed person queries.
var personColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "ordered_tree",
	"created_at", "updated_at",
}

// PersonRepository handles database operations for persons.
type PersonRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository creates a new PersonRepository.
func NewPersonRepository(pool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

// scanPerson scans a single row into a Person struct.
func scanPerson(row pgx.Row) (*domain.Person, error) {
	var person domain.Person
	err := row.Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&person.Email,
		&person.Phone,
		&person.OrderedTree,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	return &person, nil
}

// ListRows returns every row of the persons table as column name to value maps,
// in the order the database returns them. The shape of each map follows the
// live schema. A dedicated connection is acquired for the query and released
// on every return path.
func (r *PersonRepository) ListRows(ctx context.Context) ([]map[string]any, error) {
	query, args, err := psql.
		Select("*").
		From("persons").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListRows query: %w", err)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect persons: %w", err)
	}
	if records == nil {
		records = []map[string]any{}
	}

	return normalizeRows(records), nil
}

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, personID int64) (*domain.Person, error) {
	query, args, err := psql.
		Select(personColumns...).
		From("persons").
		Where(sq.Eq{"id": personID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for person %d: %w", personID, err)
	}

	return scanPerson(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a person by ID and locks the row until tx ends.
func (r *PersonRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, personID int64) (*domain.Person, error) {
	query, args, err := psql.
		Select(personColumns...).
		From("persons").
		Where(sq.Eq{"id": personID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for person %d: %w", personID, err)
	}

	return scanPerson(tx.QueryRow(ctx, query, args...))
}

// EmailExists reports whether a person with the given email exists.
func (r *PersonRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("persons").
		Where(sq.Eq{"email": email}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build EmailExists query: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("query email exists: %w", err)
	}
	return exists, nil
}

// Create inserts a person and returns the stored row.
// A unique violation (duplicate email) is reported as domain.ErrEmailExists.
func (r *PersonRepository) Create(ctx context.Context, p domain.NewPerson) (*domain.Person, error) {
	query, args, err := psql.
		Insert("persons").
		Columns("first_name", "last_name", "email", "phone").
		Values(p.FirstName, p.LastName, p.Email, p.Phone).
		Suffix("RETURNING id, first_name, last_name, email, phone, ordered_tree, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query: %w", err)
	}

	person, err := scanPerson(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert person: %w", err)
	}
	return person, nil
}

// SetOrderedTree sets (or clears, when treeID is nil) the person's ordered tree.
func (r *PersonRepository) SetOrderedTree(ctx context.Context, tx pgx.Tx, personID int64, treeID *int64) error {
	query, args, err := psql.
		Update("persons").
		Set("ordered_tree", treeID).
		Where(sq.Eq{"id": personID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SetOrderedTree query: %w", err)
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update ordered_tree: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}
