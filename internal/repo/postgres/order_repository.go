package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация хранилища заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository — конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Create — вставляет заказ со статусом "Нове" и возвращает присвоенный ID.
func (r *OrderRepository) Create(ctx context.Context, input *domain.OrderInput) (int64, error) {
	if input == nil {
		return 0, errors.New("order input is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (name, phone, city, warehouse, chair, size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		input.Name, input.Phone, input.City, input.Warehouse, input.Chair, input.Size,
		string(domain.StatusNew),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

// List — все заказы, свежие первыми. Пустой срез (не nil) при отсутствии строк.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, phone, city, warehouse, chair, size, status, created_at
		FROM orders
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Phone, &o.City, &o.Warehouse, &o.Chair, &o.Size,
			&status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = domain.Status(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	return orders, nil
}

// UpdateStatus — меняет только поле статуса.
// Ноль затронутых строк трактуется как отсутствие заказа.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order id=%d: %w", id, domain.ErrOrderNotFound)
	}
	return nil
}

// Delete — безвозвратное удаление, без soft-delete и журнала.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order id=%d: %w", id, domain.ErrOrderNotFound)
	}
	return nil
}
