package ports

import (
	"context"

	"github.com/kriselko/backend/internal/domain"
)

type OrderValidator interface {
	Validate(ctx context.Context, input *domain.OrderInput) error
}
