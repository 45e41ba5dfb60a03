package ports

import (
	"context"

	"github.com/kriselko/backend/internal/domain"
)

// OrderService — прикладные операции над заказами для транспортного слоя.
type OrderService interface {
	CreateOrder(ctx context.Context, input *domain.OrderInput) (int64, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, id int64, newStatus string) error
	DeleteOrder(ctx context.Context, id int64) error
}

// DirectoryService — операции справочника адресов для транспортного слоя.
type DirectoryService interface {
	Settlements(ctx context.Context) ([]domain.Settlement, error)
	Warehouses(ctx context.Context, settlementRef string) ([]domain.Warehouse, error)
}
