package ports

import (
	"context"

	"github.com/kriselko/backend/internal/domain"
)

// OrderRepository — хранилище заказов. Единственный владелец записей Order.
type OrderRepository interface {
	// Create — сохраняет новый заказ и возвращает присвоенный ID.
	Create(ctx context.Context, input *domain.OrderInput) (int64, error)

	// List — все заказы, отсортированные по ID по убыванию (свежие первыми).
	// При отсутствии заказов возвращает пустой срез, не ошибку.
	List(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus — меняет статус заказа; domain.ErrOrderNotFound, если ID неизвестен.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error

	// Delete — безвозвратно удаляет заказ; domain.ErrOrderNotFound, если ID неизвестен.
	Delete(ctx context.Context, id int64) error
}
