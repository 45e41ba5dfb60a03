package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
	"github.com/kriselko/backend/pkg/httpx"
	"github.com/kriselko/backend/pkg/validate"
)

// Handler — HTTP-обработчики витрины и бэк-офиса.
type Handler struct {
	orders    ports.OrderService
	directory ports.DirectoryService
	log       ports.Logger
}

// NewHandler — конструктор.
func NewHandler(orders ports.OrderService, directory ports.DirectoryService, log ports.Logger) *Handler {
	return &Handler{orders: orders, directory: directory, log: log}
}

// orderResponse — заказ в ответе списка; formatted_timestamp — нормализованная
// метка времени (UTC, миллисекунды), как отдавала исходная витрина.
type orderResponse struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	Phone              string        `json:"phone"`
	City               string        `json:"city"`
	Warehouse          string        `json:"warehouse"`
	Chair              string        `json:"chair"`
	Size               string        `json:"size"`
	Status             domain.Status `json:"status"`
	CreatedAt          time.Time     `json:"order_date"`
	FormattedTimestamp string        `json:"formatted_timestamp"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:                 o.ID,
		Name:               o.Name,
		Phone:              o.Phone,
		City:               o.City,
		Warehouse:          o.Warehouse,
		Chair:              o.Chair,
		Size:               o.Size,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		FormattedTimestamp: o.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// createOrder — POST /api/orders.
func (h *Handler) createOrder(c *gin.Context) {
	var input domain.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Недійсні дані замовлення."})
		return
	}

	id, err := h.orders.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Недійсні дані замовлення."})
			return
		}
		h.log.Errorf(c.Request.Context(), "CreateOrder failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Помилка сервера при збереженні замовлення."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Замовлення успішно прийнято!",
		"orderId": id,
	})
}

// listOrders — GET /api/orders.
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "ListOrders failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Помилка сервера при отриманні даних."})
		return
	}

	data := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		data = append(data, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// updateStatus — PUT /api/orders/:id/status.
func (h *Handler) updateStatus(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("Замовлення з ID %s не знайдено.", c.Param("id"))})
		return
	}

	var body struct {
		NewStatus string `json:"newStatus"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Недійсне значення статусу."})
		return
	}

	if err := h.orders.SetStatus(c.Request.Context(), id, body.NewStatus); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Недійсне значення статусу."})
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("Замовлення з ID %d не знайдено.", id)})
		default:
			h.log.Errorf(c.Request.Context(), "SetStatus failed id=%d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Помилка сервера при оновленні статусу."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Статус замовлення %d оновлено на %s", id, body.NewStatus),
	})
}

// deleteOrder — DELETE /api/orders/:id.
func (h *Handler) deleteOrder(c *gin.Context) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("Замовлення з ID %s не знайдено.", c.Param("id"))})
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("Замовлення з ID %d не знайдено.", id)})
			return
		}
		h.log.Errorf(c.Request.Context(), "DeleteOrder failed id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Помилка сервера при видаленні."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Замовлення %d успішно видалено.", id),
	})
}

// listSettlements — POST /api/novaposhta/cities (тело не требуется).
func (h *Handler) listSettlements(c *gin.Context) {
	settlements, err := h.directory.Settlements(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "Settlements failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Помилка сервера: %s", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": settlements})
}

// listWarehouses — POST /api/novaposhta/warehouses, тело {cityRef}.
func (h *Handler) listWarehouses(c *gin.Context) {
	var body struct {
		CityRef string `json:"cityRef"`
	}
	// пустое/битое тело не ошибка разбора: валидирует usecase
	_ = c.ShouldBindJSON(&body)

	warehouses, err := h.directory.Warehouses(c.Request.Context(), body.CityRef)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Необхідно вказати Ref міста."})
			return
		}
		h.log.Errorf(c.Request.Context(), "Warehouses failed ref=%q: %v", body.CityRef, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Помилка сервера: %s", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": warehouses})
}
