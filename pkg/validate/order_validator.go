package validate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidInput — общая (sentinel error) ошибка валидации клиентского ввода.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidOrder — ошибка валидации формы заказа; уточнение ErrInvalidInput.
var ErrInvalidOrder = fmt.Errorf("order validation failed: %w", ErrInvalidInput)

// Украинский мобильный номер: опциональный префикс +38, затем 0 и девять цифр.
// Проверяется после нормализации (см. normalizePhone).
var phoneRe = regexp.MustCompile(`^(\+38)?0\d{9}$`)

// OrderValidator — проверка полей формы заказа перед сохранением.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Validate возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет обязательные поля и формат телефона.
func (v *OrderValidator) Validate(_ context.Context, input *domain.OrderInput) error {
	if input == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}

	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"phone", input.Phone},
		{"city", input.City},
		{"warehouse", input.Warehouse},
		{"chair", input.Chair},
		{"size", input.Size},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: поле %s обязательно", ErrInvalidOrder, r.field)
		}
	}

	if !phoneRe.MatchString(normalizePhone(input.Phone)) {
		return fmt.Errorf("%w: phone %q не похож на украинский мобильный номер", ErrInvalidOrder, input.Phone)
	}
	return nil
}

// normalizePhone — убирает пробелы, скобки и дефисы перед проверкой шаблона.
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '(', ')', '-':
			return -1
		}
		return r
	}, phone)
}
