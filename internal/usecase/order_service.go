package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
	"github.com/kriselko/backend/pkg/metrics"
)

// Проверка, что OrderService удовлетворяет порту транспортного слоя.
var _ ports.OrderService = (*OrderService)(nil)

// OrderService — прикладная логика жизненного цикла заказа (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository // хранилище заказов
	notifier  ports.Notifier        // алерт о новом заказе
	log       ports.Logger          // логгер
	validator ports.OrderValidator  // валидация формы

	notifyTimeout time.Duration
	wg            sync.WaitGroup // учёт фоновых уведомлений для Close
}

// NewOrderService — DI-конструктор. notifyTimeout <= 0 заменяется дефолтом.
func NewOrderService(
	repo ports.OrderRepository,
	notifier ports.Notifier,
	log ports.Logger,
	validator ports.OrderValidator,
	notifyTimeout time.Duration,
) *OrderService {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &OrderService{
		repo:          repo,
		notifier:      notifier,
		log:           log,
		validator:     validator,
		notifyTimeout: notifyTimeout,
	}
}

// CreateOrder — принять заказ с витрины.
// Шаги:
//  1. валидация формы (validate.ErrInvalidOrder при проблемах);
//  2. сохранение со статусом "Нове" и получение ID;
//  3. уведомление менеджера в отдельной горутине — ответ клиенту
//     не ждёт результата отправки, ошибка только логируется.
func (s *OrderService) CreateOrder(ctx context.Context, input *domain.OrderInput) (int64, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		s.log.Warnf(ctx, "order validation failed: %v", err)
		return 0, err
	}

	id, err := s.repo.Create(ctx, input)
	if err != nil {
		s.log.Errorf(ctx, "repo.Create failed: %v", err)
		return 0, fmt.Errorf("failed to save order: %w", err)
	}
	metrics.OrdersCreated.Inc()
	s.log.Infof(ctx, "order created id=%d city=%s chair=%s", id, input.City, input.Chair)

	order := &domain.Order{
		ID:        id,
		Name:      input.Name,
		Phone:     input.Phone,
		City:      input.City,
		Warehouse: input.Warehouse,
		Chair:     input.Chair,
		Size:      input.Size,
		Status:    domain.StatusNew,
	}

	// Fire-and-forget: отдельный контекст, т.к. контекст запроса
	// завершится сразу после ответа клиенту.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		nCtx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(nCtx, order); err != nil {
			s.log.Errorf(nCtx, "order notification failed id=%d err=%v", id, err)
		}
	}()

	return id, nil
}

// ListOrders — все заказы, свежие первыми.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.List failed: %v", err)
		return nil, err
	}
	return orders, nil
}

// SetStatus — смена статуса заказа. Допустим любой переход между
// статусами; проверяется только само значение newStatus.
func (s *OrderService) SetStatus(ctx context.Context, id int64, newStatus string) error {
	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		s.log.Warnf(ctx, "invalid status id=%d value=%q", id, newStatus)
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Infof(ctx, "order status updated id=%d status=%s", id, status)
	return nil
}

// DeleteOrder — безвозвратное удаление заказа.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infof(ctx, "order deleted id=%d", id)
	return nil
}

// Close — дожидается завершения фоновых уведомлений (graceful shutdown).
func (s *OrderService) Close() {
	s.wg.Wait()
}
