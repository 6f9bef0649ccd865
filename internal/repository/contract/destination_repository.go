package contract

import (
	"context"

	"ai-travelmate-be/internal/entity"
	"ai-travelmate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DestinationRepository interface {
	Create(ctx context.Context, destination *entity.Destination) error
	Update(ctx context.Context, destination *entity.Destination) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Destination, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Destination, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
