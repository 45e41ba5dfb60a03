package ports

import (
	"context"

	"github.com/kriselko/backend/internal/domain"
)

// Notifier — отправка уведомления о новом заказе во внешний мессенджер.
// Строго best-effort: вызывающая сторона логирует ошибку и не более того.
type Notifier interface {
	Notify(ctx context.Context, order *domain.Order) error
}
