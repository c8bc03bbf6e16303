package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, scr *Screen) error
	GetByID(ctx context.Context, id string) (*Screen, error)
	// GetWithDetails loads the screen together with its availability
	// windows, booked slots and rate card, i.e. everything the
	// availability and pricing engines consume.
	GetWithDetails(ctx context.Context, id string) (*Screen, error)
	// Search returns active+verified screens matching the SQL-expressible
	// filters. Radius and availability filtering happen in the service.
	Search(ctx context.Context, filter Filter) ([]*Screen, error)
	Update(ctx context.Context, scr *Screen) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetVerified(ctx context.Context, id string, verified bool) error

	ListWindows(ctx context.Context, screenID string) ([]AvailabilityWindow, error)
	AddWindow(ctx context.Context, w *AvailabilityWindow) error
	DeleteWindow(ctx context.Context, screenID, windowID string) error

	// GetRateCard returns (nil, nil) when the screen has no rate card yet.
	GetRateCard(ctx context.Context, screenID string) (*RateCard, error)
	UpsertRateCard(ctx context.Context, rc *RateCard) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const screenColumns = `
	id, owner_id, name, description, type,
	address, city, state, country, postal_code,
	latitude, longitude, size_width, size_height, size_unit,
	image_url, is_active, is_verified, created_at, updated_at
`

func scanScreen(row pgx.Row) (*Screen, error) {
	var s Screen
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Type,
		&s.Address, &s.City, &s.State, &s.Country, &s.PostalCode,
		&s.Location.Latitude, &s.Location.Longitude,
		&s.Size.Width, &s.Size.Height, &s.Size.Unit,
		&s.ImageURL, &s.IsActive, &s.IsVerified, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan screen failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Screen) error {
	const query = `
		INSERT INTO public.screens (
			owner_id, name, description, type,
			address, city, state, country, postal_code,
			latitude, longitude, size_width, size_height, size_unit,
			image_url, is_active, is_verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		s.OwnerID, s.Name, s.Description, s.Type,
		s.Address, s.City, s.State, s.Country, s.PostalCode,
		s.Location.Latitude, s.Location.Longitude,
		s.Size.Width, s.Size.Height, s.Size.Unit,
		s.ImageURL, s.IsActive, s.IsVerified,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create screen failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Screen, error) {
	query := fmt.Sprintf("SELECT %s FROM public.screens WHERE id = $1", screenColumns)
	return scanScreen(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetWithDetails(ctx context.Context, id string) (*Screen, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Windows, err = r.ListWindows(ctx, id); err != nil {
		return nil, err
	}
	if s.Bookings, err = r.listBookedSlots(ctx, id); err != nil {
		return nil, err
	}
	if s.RateCard, err = r.GetRateCard(ctx, id); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *pgxRepository) Search(ctx context.Context, filter Filter) ([]*Screen, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "owner_id", "name", "description", "type",
		"address", "city", "state", "country", "postal_code",
		"latitude", "longitude", "size_width", "size_height", "size_unit",
		"image_url", "is_active", "is_verified", "created_at", "updated_at",
	).From("public.screens")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	} else {
		// Marketplace search only exposes live inventory.
		query = query.Where(squirrel.Eq{"is_active": true, "is_verified": true})
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"description": like},
			squirrel.ILike{"type": like},
		})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"city": "%" + filter.City + "%"})
	}
	if filter.State != "" {
		query = query.Where(squirrel.ILike{"state": "%" + filter.State + "%"})
	}
	if filter.Country != "" {
		query = query.Where(squirrel.ILike{"country": "%" + filter.Country + "%"})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.ILike{"type": "%" + filter.Type + "%"})
	}

	query = query.OrderBy("created_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search screens query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search screens failed: %w", err)
	}
	defer rows.Close()

	var screens []*Screen
	for rows.Next() {
		s, err := scanScreen(rows)
		if err != nil {
			return nil, err
		}
		screens = append(screens, s)
	}
	return screens, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, s *Screen) error {
	const query = `
		UPDATE public.screens
		SET name = $1, description = $2, type = $3,
			address = $4, city = $5, state = $6, country = $7, postal_code = $8,
			latitude = $9, longitude = $10, size_width = $11, size_height = $12, size_unit = $13,
			image_url = $14, updated_at = now()
		WHERE id = $15
	`
	ct, err := r.pool.Exec(ctx, query,
		s.Name, s.Description, s.Type,
		s.Address, s.City, s.State, s.Country, s.PostalCode,
		s.Location.Latitude, s.Location.Longitude,
		s.Size.Width, s.Size.Height, s.Size.Unit,
		s.ImageURL, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update screen failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.screens WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete screen failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.setFlag(ctx, id, "is_active", active)
}

func (r *pgxRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.setFlag(ctx, id, "is_verified", verified)
}

func (r *pgxRepository) setFlag(ctx context.Context, id, column string, value bool) error {
	query := fmt.Sprintf("UPDATE public.screens SET %s = $1, updated_at = now() WHERE id = $2", column)
	ct, err := r.pool.Exec(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("set screen %s failed: %w", column, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListWindows(ctx context.Context, screenID string) ([]AvailabilityWindow, error) {
	const query = `
		SELECT id, screen_id, day_of_week, start_of_day, end_of_day
		FROM public.availability_windows
		WHERE screen_id = $1
		ORDER BY day_of_week, start_of_day
	`
	rows, err := r.pool.Query(ctx, query, screenID)
	if err != nil {
		return nil, fmt.Errorf("list availability windows failed: %w", err)
	}
	defer rows.Close()

	var windows []AvailabilityWindow
	for rows.Next() {
		var (
			w          AvailabilityWindow
			dow        int
			start, end pgtype.Time
		)
		if err := rows.Scan(&w.ID, &w.ScreenID, &dow, &start, &end); err != nil {
			return nil, fmt.Errorf("scan availability window failed: %w", err)
		}
		w.DayOfWeek = time.Weekday(dow)
		w.StartOfDay = time.Duration(start.Microseconds) * time.Microsecond
		w.EndOfDay = time.Duration(end.Microseconds) * time.Microsecond
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *pgxRepository) AddWindow(ctx context.Context, w *AvailabilityWindow) error {
	const query = `
		INSERT INTO public.availability_windows (screen_id, day_of_week, start_of_day, end_of_day)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		w.ScreenID, int(w.DayOfWeek), timeOfDayValue(w.StartOfDay), timeOfDayValue(w.EndOfDay),
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("add availability window failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) DeleteWindow(ctx context.Context, screenID, windowID string) error {
	const query = `DELETE FROM public.availability_windows WHERE id = $1 AND screen_id = $2`
	ct, err := r.pool.Exec(ctx, query, windowID, screenID)
	if err != nil {
		return fmt.Errorf("delete availability window failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrWindowNotFound
	}
	return nil
}

func (r *pgxRepository) GetRateCard(ctx context.Context, screenID string) (*RateCard, error) {
	const query = `
		SELECT screen_id, hourly_rate, daily_rate, weekly_rate, monthly_rate,
			currency, minimum_booking_fee, updated_at
		FROM public.rate_cards
		WHERE screen_id = $1
	`
	row := r.pool.QueryRow(ctx, query, screenID)

	var rc RateCard
	err := row.Scan(
		&rc.ScreenID, &rc.HourlyRate, &rc.DailyRate, &rc.WeeklyRate, &rc.MonthlyRate,
		&rc.Currency, &rc.MinimumBookingFee, &rc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate card failed: %w", err)
	}
	return &rc, nil
}

func (r *pgxRepository) UpsertRateCard(ctx context.Context, rc *RateCard) error {
	const query = `
		INSERT INTO public.rate_cards (
			screen_id, hourly_rate, daily_rate, weekly_rate, monthly_rate,
			currency, minimum_booking_fee
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (screen_id) DO UPDATE SET
			hourly_rate = EXCLUDED.hourly_rate,
			daily_rate = EXCLUDED.daily_rate,
			weekly_rate = EXCLUDED.weekly_rate,
			monthly_rate = EXCLUDED.monthly_rate,
			currency = EXCLUDED.currency,
			minimum_booking_fee = EXCLUDED.minimum_booking_fee,
			updated_at = now()
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		rc.ScreenID, rc.HourlyRate, rc.DailyRate, rc.WeeklyRate, rc.MonthlyRate,
		rc.Currency, rc.MinimumBookingFee,
	).Scan(&rc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert rate card failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) listBookedSlots(ctx context.Context, screenID string) ([]BookedSlot, error) {
	const query = `
		SELECT id, start_time, end_time, status
		FROM public.bookings
		WHERE screen_id = $1
		ORDER BY start_time
	`
	rows, err := r.pool.Query(ctx, query, screenID)
	if err != nil {
		return nil, fmt.Errorf("list booked slots failed: %w", err)
	}
	defer rows.Close()

	var slots []BookedSlot
	for rows.Next() {
		var s BookedSlot
		if err := rows.Scan(&s.BookingID, &s.StartTime, &s.EndTime, &s.Status); err != nil {
			return nil, fmt.Errorf("scan booked slot failed: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func timeOfDayValue(d time.Duration) pgtype.Time {
	return pgtype.Time{
		Microseconds: int64(d / time.Microsecond),
		Valid:        true,
	}
}
