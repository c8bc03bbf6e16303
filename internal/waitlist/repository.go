package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	GetByEmail(ctx context.Context, email string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var entryColumns = []string{
	"id", "email", "first_name", "last_name", "company_name",
	"phone_number", "user_type", "status", "invited_at", "created_at", "updated_at",
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CompanyName,
		&e.PhoneNumber, &e.UserType, &e.Status, &e.InvitedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan waitlist entry failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.waitlist_entries").
		Columns("email", "first_name", "last_name", "company_name", "phone_number", "user_type", "status").
		Values(e.Email, e.FirstName, e.LastName, e.CompanyName, e.PhoneNumber, e.UserType, e.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create waitlist entry query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyListed
		}
		return fmt.Errorf("create waitlist entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(entryColumns...).
		From("public.waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get waitlist entry query failed: %w", err)
	}

	return scanEntry(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(entryColumns...).
		From("public.waitlist_entries").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get waitlist entry query failed: %w", err)
	}

	return scanEntry(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, entryColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).From("public.waitlist_entries")

	if filter.UserType != "" {
		query = query.Where(squirrel.Eq{"user_type": filter.UserType})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"email": "%" + filter.Keyword + "%"},
			squirrel.ILike{"company_name": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("created_at ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list waitlist query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list waitlist entries failed: %w", err)
	}
	defer rows.Close()

	var result []*Entry
	var total int

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CompanyName,
			&e.PhoneNumber, &e.UserType, &e.Status, &e.InvitedAt,
			&e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan waitlist entry failed: %w", err)
		}
		result = append(result, &e)
	}

	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.waitlist_entries").
		Set("status", e.Status).
		Set("invited_at", e.InvitedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update waitlist entry query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update waitlist entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete waitlist entry query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete waitlist entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
