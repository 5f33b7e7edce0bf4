package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/internal/pricing"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/common"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/logger"
)

// Service handles quote audit business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new quote service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Record persists an issued breakdown. The insert runs in the background so
// auditing never delays the quote response, and a storage failure is logged
// rather than surfaced.
func (s *Service) Record(ctx context.Context, breakdown pricing.PriceBreakdown) {
	quote := &Quote{
		ID:                 uuid.New(),
		Strategy:           breakdown.StrategyName,
		Currency:           breakdown.Currency,
		DistanceKm:         breakdown.Breakdown.DistanceKm,
		PassengerCount:     breakdown.Breakdown.PassengerCount,
		VehicleType:        breakdown.Breakdown.VehicleType,
		BaseFare:           breakdown.BaseFare,
		VehicleMultiplier:  breakdown.VehicleMultiplier,
		SurgeMultiplier:    breakdown.SurgeMultiplier,
		IsSurgeActive:      breakdown.IsSurgeActive,
		SurgeReason:        breakdown.SurgeReason,
		PassengerSurcharge: breakdown.PassengerSurcharge,
		Subtotal:           breakdown.Subtotal,
		PlatformFee:        breakdown.PlatformFee,
		Total:              breakdown.Total,
		CreatedAt:          time.Now(),
	}

	// Detach from the request context so the insert survives the response
	// being written, while keeping the correlation ID for logging.
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.repo.Insert(ctx, quote); err != nil {
			logger.WithContext(ctx).Error("failed to record quote",
				zap.String("quote_id", quote.ID.String()),
				zap.Error(err),
			)
		}
	}()
}

// GetQuote returns a single recorded quote
func (s *Service) GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("quote not found")
		}
		return nil, err
	}
	return quote, nil
}

// ListRecent returns recorded quotes, newest first
func (s *Service) ListRecent(ctx context.Context, limit, offset int) ([]Quote, int, error) {
	result, total, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if result == nil {
		result = []Quote{}
	}
	return result, total, nil
}
