package quotes

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Shared column list for quote queries
const quoteColumns = `
	q.id, q.strategy, q.currency,
	q.distance_km, q.passenger_count, q.vehicle_type,
	q.base_fare, q.vehicle_multiplier,
	q.surge_multiplier, q.is_surge_active, COALESCE(q.surge_reason, ''),
	q.passenger_surcharge, q.subtotal, q.platform_fee, q.total,
	q.created_at`

// scanQuote scans a row into a Quote
func scanQuote(scan func(dest ...interface{}) error) (Quote, error) {
	q := Quote{}
	err := scan(
		&q.ID, &q.Strategy, &q.Currency,
		&q.DistanceKm, &q.PassengerCount, &q.VehicleType,
		&q.BaseFare, &q.VehicleMultiplier,
		&q.SurgeMultiplier, &q.IsSurgeActive, &q.SurgeReason,
		&q.PassengerSurcharge, &q.Subtotal, &q.PlatformFee, &q.Total,
		&q.CreatedAt,
	)
	return q, err
}

// Repository handles quote data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new quote repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert persists a quote
func (r *Repository) Insert(ctx context.Context, quote *Quote) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pricing_quotes (
			id, strategy, currency,
			distance_km, passenger_count, vehicle_type,
			base_fare, vehicle_multiplier,
			surge_multiplier, is_surge_active, surge_reason,
			passenger_surcharge, subtotal, platform_fee, total,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		quote.ID, quote.Strategy, quote.Currency,
		quote.DistanceKm, quote.PassengerCount, quote.VehicleType,
		quote.BaseFare, quote.VehicleMultiplier,
		quote.SurgeMultiplier, quote.IsSurgeActive, nullIfEmpty(quote.SurgeReason),
		quote.PassengerSurcharge, quote.Subtotal, quote.PlatformFee, quote.Total,
		quote.CreatedAt,
	)
	return err
}

// GetByID returns a single quote by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	q, err := scanQuote(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx,
			`SELECT `+quoteColumns+` FROM pricing_quotes q WHERE q.id = $1`, id,
		).Scan(dest...)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListRecent returns the most recent quotes, newest first
func (r *Repository) ListRecent(ctx context.Context, limit, offset int) ([]Quote, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pricing_quotes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+quoteColumns+` FROM pricing_quotes q ORDER BY q.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Quote
	for rows.Next() {
		q, err := scanQuote(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, q)
	}
	return result, total, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
