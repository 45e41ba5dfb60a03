package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/novaposhta"
	"github.com/kriselko/backend/internal/ports/mocks"
	rest "github.com/kriselko/backend/internal/transport/http"
	"github.com/kriselko/backend/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newTestRouter(t *testing.T) (*mocks.MockOrderService, *mocks.MockDirectoryService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)

	orders := mocks.NewMockOrderService(ctrl)
	directory := mocks.NewMockDirectoryService(ctrl)

	h := rest.NewHandler(orders, directory, noopLogger{})
	return orders, directory, rest.NewRouter(h, "", "")
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrder_Created(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().CreateOrder(gomock.Any(), gomock.AssignableToTypeOf(&domain.OrderInput{})).
		DoAndReturn(func(_ context.Context, in *domain.OrderInput) (int64, error) {
			if in.Name != "Олена" || in.Phone != "+380501234567" {
				t.Fatalf("input not bound: %+v", in)
			}
			return 42, nil
		})

	body := `{"name":"Олена","phone":"+380501234567","city":"Київ","warehouse":"Відділення №1","chair":"Крісло","size":"M"}`
	w := doJSON(t, r, http.MethodPost, "/api/orders", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID int64  `json:"orderId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.OrderID != 42 || resp.Message != "Замовлення успішно прийнято!" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCreateOrder_ValidationError_400(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(int64(0), validate.ErrInvalidOrder)

	w := doJSON(t, r, http.MethodPost, "/api/orders", `{"name":"Олена"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Недійсні дані замовлення.") {
		t.Fatalf("want ukrainian validation message, got %s", w.Body.String())
	}
}

func TestCreateOrder_BadJSON_400(t *testing.T) {
	_, _, r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", `{`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateOrder_ServiceError_500(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

	w := doJSON(t, r, http.MethodPost, "/api/orders", `{"name":"n"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestListOrders_OK(t *testing.T) {
	orders, _, r := newTestRouter(t)

	created := time.Date(2025, 6, 1, 9, 30, 0, 123_000_000, time.FixedZone("EEST", 3*3600))
	orders.EXPECT().ListOrders(gomock.Any()).Return([]domain.Order{
		{ID: 2, Name: "Ігор", Status: domain.StatusNew, CreatedAt: created},
		{ID: 1, Name: "Олена", Status: domain.StatusCompleted, CreatedAt: created},
	}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			ID                 int64  `json:"id"`
			Status             string `json:"status"`
			FormattedTimestamp string `json:"formatted_timestamp"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || len(resp.Data) != 2 || resp.Data[0].ID != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	// Метка времени нормализуется в UTC с миллисекундами.
	if resp.Data[0].FormattedTimestamp != "2025-06-01T06:30:00.123Z" {
		t.Fatalf("wrong formatted_timestamp: %q", resp.Data[0].FormattedTimestamp)
	}
}

func TestUpdateStatus_OK(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().SetStatus(gomock.Any(), int64(5), "Виконано").Return(nil)

	w := doJSON(t, r, http.MethodPut, "/api/orders/5/status", `{"newStatus":"Виконано"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Статус замовлення 5 оновлено на Виконано") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestUpdateStatus_UnknownValue_400(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().SetStatus(gomock.Any(), int64(5), "Невідомо").
		Return(fmt.Errorf("%w: %q", domain.ErrUnknownStatus, "Невідомо"))

	w := doJSON(t, r, http.MethodPut, "/api/orders/5/status", `{"newStatus":"Невідомо"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Недійсне значення статусу.") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestUpdateStatus_NotFound_404(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().SetStatus(gomock.Any(), int64(99), "Виконано").Return(domain.ErrOrderNotFound)

	w := doJSON(t, r, http.MethodPut, "/api/orders/99/status", `{"newStatus":"Виконано"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Замовлення з ID 99 не знайдено.") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestUpdateStatus_NonNumericID_404(t *testing.T) {
	_, _, r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/orders/abc/status", `{"newStatus":"Виконано"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404 for non-numeric id, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteOrder_OK(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().DeleteOrder(gomock.Any(), int64(7)).Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/orders/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Замовлення 7 успішно видалено.") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestDeleteOrder_NotFound_404(t *testing.T) {
	orders, _, r := newTestRouter(t)

	orders.EXPECT().DeleteOrder(gomock.Any(), int64(404)).Return(domain.ErrOrderNotFound)

	w := doJSON(t, r, http.MethodDelete, "/api/orders/404", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestListSettlements_OK(t *testing.T) {
	_, directory, r := newTestRouter(t)

	directory.EXPECT().Settlements(gomock.Any()).Return([]domain.Settlement{
		{Ref: "r1", Name: "Київ"},
	}, nil)

	// Тело не требуется: витрина шлёт пустой POST.
	w := doJSON(t, r, http.MethodPost, "/api/novaposhta/cities", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Ref  string `json:"Ref"`
			Name string `json:"Description"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Data[0].Name != "Київ" {
		t.Fatalf("unexpected response: %+v (body=%s)", resp, w.Body.String())
	}
}

func TestListSettlements_UpstreamError_500(t *testing.T) {
	_, directory, r := newTestRouter(t)

	directory.EXPECT().Settlements(gomock.Any()).
		Return(nil, fmt.Errorf("%w: API key expired", novaposhta.ErrAPI))

	w := doJSON(t, r, http.MethodPost, "/api/novaposhta/cities", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
	// Клиент видит текст ошибки справочника.
	if !strings.Contains(w.Body.String(), "Помилка сервера:") ||
		!strings.Contains(w.Body.String(), "API key expired") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestListWarehouses_OK(t *testing.T) {
	_, directory, r := newTestRouter(t)

	directory.EXPECT().Warehouses(gomock.Any(), "ref-kyiv").Return([]domain.Warehouse{
		{Ref: "w1", Name: "Відділення №1"},
	}, nil)

	w := doJSON(t, r, http.MethodPost, "/api/novaposhta/warehouses", `{"cityRef":"ref-kyiv"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestListWarehouses_MissingRef_400(t *testing.T) {
	_, directory, r := newTestRouter(t)

	directory.EXPECT().Warehouses(gomock.Any(), "").
		Return(nil, fmt.Errorf("%w: пустой Ref населённого пункта", validate.ErrInvalidInput))

	w := doJSON(t, r, http.MethodPost, "/api/novaposhta/warehouses", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Необхідно вказати Ref міста.") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestPing_200(t *testing.T) {
	_, _, r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestMetrics_200(t *testing.T) {
	_, _, r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// Содержимое может меняться — достаточно проверить, что не пусто.
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}

func TestNoRoute_404(t *testing.T) {
	_, _, r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/no-such-route", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}
