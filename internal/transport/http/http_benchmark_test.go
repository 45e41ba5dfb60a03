//go:build !integration

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kriselko/backend/internal/domain"
)

// --- Бенчмарки ---

// Список заказов: 10/50/100 — измеряем рост аллокаций и времени
func BenchmarkHTTP_ListOrders(b *testing.B) {
	log := nopLogger{}

	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			// готовим список из n заказов
			list := make([]domain.Order, 0, n)
			for i := 0; i < n; i++ {
				list = append(list, domain.Order{
					ID:        int64(i + 1),
					Name:      "Олена",
					Phone:     "+380501234567",
					City:      "Київ",
					Warehouse: "Відділення №1",
					Chair:     "Крісло",
					Size:      "M",
					Status:    domain.StatusNew,
					CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				})
			}
			h := NewHandler(svcOrders{list: list}, svcDirectory{}, log)

			lean := makeLeanRouter(h)
			benchServe(b, lean, http.MethodGet, "/api/orders", http.StatusOK)
		})
	}
}

// Справочник городов из прогретого кэша — горячий путь витрины
func BenchmarkHTTP_Cities(b *testing.B) {
	log := nopLogger{}

	settlements := make([]domain.Settlement, 0, 500)
	for i := 0; i < 500; i++ {
		settlements = append(settlements, domain.Settlement{
			Ref:  "ref-" + strconv.Itoa(i),
			Name: "Місто " + strconv.Itoa(i),
		})
	}
	h := NewHandler(svcOrders{}, svcDirectory{settlements: settlements}, log)

	lean := makeLeanRouter(h)
	benchServe(b, lean, http.MethodPost, "/api/novaposhta/cities", http.StatusOK)
}

// Ошибочный путь (404): "цена" роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	log := nopLogger{}
	h := NewHandler(svcOrders{}, svcDirectory{}, log)
	r := makeLeanRouter(h)

	benchServe(b, r, http.MethodGet, "/nope", http.StatusNotFound)
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стабы ---

type svcOrders struct{ list []domain.Order }

func (s svcOrders) CreateOrder(context.Context, *domain.OrderInput) (int64, error) { return 1, nil }
func (s svcOrders) ListOrders(context.Context) ([]domain.Order, error)             { return s.list, nil }
func (s svcOrders) SetStatus(context.Context, int64, string) error                 { return nil }
func (s svcOrders) DeleteOrder(context.Context, int64) error                       { return nil }

type svcDirectory struct{ settlements []domain.Settlement }

func (s svcDirectory) Settlements(context.Context) ([]domain.Settlement, error) {
	return s.settlements, nil
}
func (s svcDirectory) Warehouses(context.Context, string) ([]domain.Warehouse, error) {
	return nil, nil
}

// --- функции-помощники ---

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/cors/logger — получаем меньшую аллокацию
	r.GET("/api/orders", h.listOrders)
	r.POST("/api/novaposhta/cities", h.listSettlements)
	return r
}

func benchServe(b *testing.B, r *gin.Engine, method, path string, wantCode int) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(method, path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			// вычитываем тело
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != wantCode {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
