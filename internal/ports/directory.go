package ports

import (
	"context"

	"github.com/kriselko/backend/internal/domain"
)

// SettlementSource — источник полного списка населённых пунктов
// (уже отфильтрованного и отсортированного). Реализуется клиентом
// Новой Почты и кэшем поверх него; кэш оборачивает клиента.
type SettlementSource interface {
	Settlements(ctx context.Context) ([]domain.Settlement, error)
}

// WarehouseSource — источник списка отделений по Ref населённого пункта.
// Всегда живой запрос, без кэширования.
type WarehouseSource interface {
	Warehouses(ctx context.Context, settlementRef string) ([]domain.Warehouse, error)
}
