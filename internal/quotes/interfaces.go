package quotes

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the interface for quote repository operations
type RepositoryInterface interface {
	Insert(ctx context.Context, quote *Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	ListRecent(ctx context.Context, limit, offset int) ([]Quote, int, error)
}
