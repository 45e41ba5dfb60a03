package domain

import (
	"errors"
	"fmt"
	"time"
)

// Статусы заказа — закрытый набор значений.
// Значения хранятся как в исходной витрине (украинские строки),
// поэтому они же уходят в БД и в ответы API.
type Status string

const (
	StatusNew        Status = "Нове"
	StatusProcessing Status = "В обробці"
	StatusShipping   Status = "В доставці"
	StatusCompleted  Status = "Виконано"
	StatusCancelled  Status = "Скасовано"
)

// ErrUnknownStatus — строка статуса вне допустимого набора.
var ErrUnknownStatus = errors.New("unknown order status")

// ErrOrderNotFound — заказ с указанным ID отсутствует в хранилище.
var ErrOrderNotFound = errors.New("order not found")

// ParseStatus — разбирает строку статуса; любые переходы между
// статусами разрешены, проверяется только само значение.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusProcessing, StatusShipping, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Order — заказ витрины. Мутируется только сменой статуса.
type Order struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Warehouse string    `json:"warehouse"`
	Chair     string    `json:"chair"`
	Size      string    `json:"size"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"order_date"`
}

// OrderInput — данные формы заказа до присвоения ID и статуса.
type OrderInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Warehouse string `json:"warehouse"`
	Chair     string `json:"chair"`
	Size      string `json:"size"`
}
