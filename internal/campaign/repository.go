package campaign

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, filter Filter) ([]*Campaign, int, error)
	Update(ctx context.Context, c *Campaign) error
	Delete(ctx context.Context, id string) error

	CreateCreative(ctx context.Context, cr *Creative) error
	GetCreative(ctx context.Context, campaignID, creativeID string) (*Creative, error)
	ListCreatives(ctx context.Context, campaignID string) ([]*Creative, error)
	UpdateCreativeReview(ctx context.Context, cr *Creative) error
	DeleteCreative(ctx context.Context, campaignID, creativeID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// spentExpr computes the campaign's spend from its non-cancelled bookings.
const spentExpr = `
	COALESCE((
		SELECT SUM(b.price)
		FROM public.bookings b
		WHERE b.campaign_id = c.id AND b.status != 'cancelled'
	), 0)
`

func (r *pgxRepository) Create(ctx context.Context, c *Campaign) error {
	const query = `
		INSERT INTO public.campaigns (
			advertiser_id, name, description, start_date, end_date,
			budget, status, target_audience, target_locations
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.AdvertiserID, c.Name, c.Description, c.StartDate, c.EndDate,
		c.Budget, c.Status, c.TargetAudience, c.TargetLocations,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create campaign failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Campaign, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.advertiser_id, c.name, c.description, c.start_date, c.end_date,
			c.budget, c.status, c.target_audience, c.target_locations,
			%s AS spent, c.created_at, c.updated_at
		FROM public.campaigns c
		WHERE c.id = $1
	`, spentExpr)

	row := r.pool.QueryRow(ctx, query, id)

	var c Campaign
	if err := row.Scan(
		&c.ID, &c.AdvertiserID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
		&c.Budget, &c.Status, &c.TargetAudience, &c.TargetLocations,
		&c.Spent, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get campaign failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Campaign, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"c.id", "c.advertiser_id", "c.name", "c.description", "c.start_date", "c.end_date",
		"c.budget", "c.status", "c.target_audience", "c.target_locations",
		spentExpr+" AS spent", "c.created_at", "c.updated_at",
		"count(*) OVER() as total_count",
	).From("public.campaigns c")

	if filter.AdvertiserID != "" {
		query = query.Where(squirrel.Eq{"c.advertiser_id": filter.AdvertiserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"c.status": filter.Status})
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.name": like},
			squirrel.ILike{"c.description": like},
		})
	}

	query = query.OrderBy("c.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list campaigns query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns failed: %w", err)
	}
	defer rows.Close()

	var campaigns []*Campaign
	var total int

	for rows.Next() {
		var c Campaign
		if err := rows.Scan(
			&c.ID, &c.AdvertiserID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
			&c.Budget, &c.Status, &c.TargetAudience, &c.TargetLocations,
			&c.Spent, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan campaign failed: %w", err)
		}
		campaigns = append(campaigns, &c)
	}

	return campaigns, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, c *Campaign) error {
	const query = `
		UPDATE public.campaigns
		SET name = $1, description = $2, start_date = $3, end_date = $4,
			budget = $5, status = $6, target_audience = $7, target_locations = $8,
			updated_at = now()
		WHERE id = $9
	`
	ct, err := r.pool.Exec(ctx, query,
		c.Name, c.Description, c.StartDate, c.EndDate,
		c.Budget, c.Status, c.TargetAudience, c.TargetLocations, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update campaign failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.campaigns WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete campaign failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const creativeColumns = `
	id, campaign_id, name, type, content_url, thumbnail_url,
	duration_seconds, is_approved, rejection_reason, created_at, updated_at
`

func (r *pgxRepository) CreateCreative(ctx context.Context, cr *Creative) error {
	const query = `
		INSERT INTO public.creatives (
			campaign_id, name, type, content_url, thumbnail_url, duration_seconds
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		cr.CampaignID, cr.Name, cr.Type, cr.ContentURL, cr.ThumbnailURL, cr.DurationSeconds,
	).Scan(&cr.ID, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create creative failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetCreative(ctx context.Context, campaignID, creativeID string) (*Creative, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.creatives
		WHERE id = $1 AND campaign_id = $2
	`, creativeColumns)

	row := r.pool.QueryRow(ctx, query, creativeID, campaignID)

	var cr Creative
	if err := row.Scan(
		&cr.ID, &cr.CampaignID, &cr.Name, &cr.Type, &cr.ContentURL, &cr.ThumbnailURL,
		&cr.DurationSeconds, &cr.IsApproved, &cr.RejectionReason, &cr.CreatedAt, &cr.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCreativeNotFound
		}
		return nil, fmt.Errorf("get creative failed: %w", err)
	}
	return &cr, nil
}

func (r *pgxRepository) ListCreatives(ctx context.Context, campaignID string) ([]*Creative, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.creatives
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`, creativeColumns)

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list creatives failed: %w", err)
	}
	defer rows.Close()

	var creatives []*Creative
	for rows.Next() {
		var cr Creative
		if err := rows.Scan(
			&cr.ID, &cr.CampaignID, &cr.Name, &cr.Type, &cr.ContentURL, &cr.ThumbnailURL,
			&cr.DurationSeconds, &cr.IsApproved, &cr.RejectionReason, &cr.CreatedAt, &cr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan creative failed: %w", err)
		}
		creatives = append(creatives, &cr)
	}
	return creatives, rows.Err()
}

func (r *pgxRepository) UpdateCreativeReview(ctx context.Context, cr *Creative) error {
	const query = `
		UPDATE public.creatives
		SET is_approved = $1, rejection_reason = $2, updated_at = now()
		WHERE id = $3 AND campaign_id = $4
	`
	ct, err := r.pool.Exec(ctx, query, cr.IsApproved, cr.RejectionReason, cr.ID, cr.CampaignID)
	if err != nil {
		return fmt.Errorf("update creative review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCreativeNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteCreative(ctx context.Context, campaignID, creativeID string) error {
	const query = `DELETE FROM public.creatives WHERE id = $1 AND campaign_id = $2`
	ct, err := r.pool.Exec(ctx, query, creativeID, campaignID)
	if err != nil {
		return fmt.Errorf("delete creative failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCreativeNotFound
	}
	return nil
}
