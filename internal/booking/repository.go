package booking

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
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, b *Booking) error
	UpdatePayment(ctx context.Context, b *Booking) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("screen_id", "campaign_id", "creative_id", "advertiser_id",
			"start_time", "end_time", "price", "currency", "status", "payment_status").
		Values(b.ScreenID, b.CampaignID, b.CreativeID, b.AdvertiserID,
			b.StartTime, b.EndTime, b.Price, b.Currency, b.Status, b.PaymentStatus).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		// The bookings table carries an exclusion constraint over
		// (screen_id, tstzrange(start_time, end_time)) for non-cancelled
		// rows, the durable backstop behind the in-process screen lock.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgerrcode.ExclusionViolation || pgErr.Code == pgerrcode.UniqueViolation) {
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

const bookingSelectColumns = `
	b.id, b.screen_id, s.name, b.campaign_id, c.name, b.creative_id, cr.name,
	b.advertiser_id, b.start_time, b.end_time, b.price, b.currency,
	b.status, b.payment_status, b.payment_reference, b.created_at, b.updated_at
`

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.bookings b
		JOIN public.screens s ON b.screen_id = s.id
		JOIN public.campaigns c ON b.campaign_id = c.id
		JOIN public.creatives cr ON b.creative_id = cr.id
		WHERE b.id = $1
	`, bookingSelectColumns)

	row := r.pool.QueryRow(ctx, query, id)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.ScreenID, &b.ScreenName, &b.CampaignID, &b.CampaignName,
		&b.CreativeID, &b.CreativeName,
		&b.AdvertiserID, &b.StartTime, &b.EndTime, &b.Price, &b.Currency,
		&b.Status, &b.PaymentStatus, &b.PaymentReference, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.screen_id", "s.name", "b.campaign_id", "c.name", "b.creative_id", "cr.name",
		"b.advertiser_id", "b.start_time", "b.end_time", "b.price", "b.currency",
		"b.status", "b.payment_status", "b.payment_reference", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.screens s ON b.screen_id = s.id").
		Join("public.campaigns c ON b.campaign_id = c.id").
		Join("public.creatives cr ON b.creative_id = cr.id")

	if filter.AdvertiserID != "" {
		query = query.Where(squirrel.Eq{"b.advertiser_id": filter.AdvertiserID})
	}
	if filter.ScreenID != "" {
		query = query.Where(squirrel.Eq{"b.screen_id": filter.ScreenID})
	}
	if filter.CampaignID != "" {
		query = query.Where(squirrel.Eq{"b.campaign_id": filter.CampaignID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndTime})
	}

	// Sorting
	orderBy := "b.start_time"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ScreenID, &b.ScreenName, &b.CampaignID, &b.CampaignName,
			&b.CreativeID, &b.CreativeName,
			&b.AdvertiserID, &b.StartTime, &b.EndTime, &b.Price, &b.Currency,
			&b.Status, &b.PaymentStatus, &b.PaymentReference, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdatePayment(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("payment_status", b.PaymentStatus).
		Set("payment_reference", b.PaymentReference).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking payment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
