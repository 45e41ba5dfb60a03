package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
	"github.com/kriselko/backend/pkg/validate"
)

// Проверка, что DirectoryService удовлетворяет порту транспортного слоя.
var _ ports.DirectoryService = (*DirectoryService)(nil)

// DirectoryService — операции справочника адресов: населённые пункты
// через кэш, отделения — всегда живым запросом.
type DirectoryService struct {
	settlements ports.SettlementSource // кэш поверх клиента
	warehouses  ports.WarehouseSource  // клиент напрямую
	log         ports.Logger
}

// NewDirectoryService — DI-конструктор.
func NewDirectoryService(
	settlements ports.SettlementSource,
	warehouses ports.WarehouseSource,
	log ports.Logger,
) *DirectoryService {
	return &DirectoryService{
		settlements: settlements,
		warehouses:  warehouses,
		log:         log,
	}
}

// Settlements — список пунктов доставки (кэшированный, TTL у кэша).
func (s *DirectoryService) Settlements(ctx context.Context) ([]domain.Settlement, error) {
	return s.settlements.Settlements(ctx)
}

// Warehouses — отделения по Ref пункта; пустой Ref — ошибка валидации.
func (s *DirectoryService) Warehouses(ctx context.Context, settlementRef string) ([]domain.Warehouse, error) {
	ref := strings.TrimSpace(settlementRef)
	if ref == "" {
		return nil, fmt.Errorf("%w: пустой Ref населённого пункта", validate.ErrInvalidInput)
	}
	return s.warehouses.Warehouses(ctx, ref)
}
