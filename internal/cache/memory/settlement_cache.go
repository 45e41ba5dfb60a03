package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
	"github.com/kriselko/backend/pkg/metrics"
)

// Проверка, что SettlementCache сам является источником населённых пунктов.
var _ ports.SettlementSource = (*SettlementCache)(nil)

// entry — единственная запись кэша: готовый список и момент загрузки.
// Запись неизменяема после публикации; обновление — замена указателя целиком.
type entry struct {
	settlements []domain.Settlement
	fetchedAt   time.Time
}

// SettlementCache — процессный кэш списка населённых пунктов поверх
// медленного источника (постраничный обход справочника занимает десятки
// запросов). Ключ один на весь процесс; устаревание проверяется лениво
// при чтении, фоновых таймеров нет. Конкурентные обновления схлопываются
// в один запрос к источнику (singleflight).
type SettlementCache struct {
	source ports.SettlementSource
	ttl    time.Duration
	log    ports.Logger

	mu      sync.RWMutex
	current *entry

	group singleflight.Group
	now   func() time.Time // подменяется в тестах
}

// NewSettlementCache — конструктор; ttl <= 0 означает «никогда не устаревает».
func NewSettlementCache(source ports.SettlementSource, ttl time.Duration, log ports.Logger) *SettlementCache {
	return &SettlementCache{
		source: source,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// Settlements — вернуть кэшированный список или перечитать источник.
// Горячий путь (валидная запись) обходится одним RLock без внешних вызовов.
func (c *SettlementCache) Settlements(ctx context.Context) ([]domain.Settlement, error) {
	if settlements, ok := c.cached(); ok {
		metrics.SettlementCacheOps.WithLabelValues("hit").Inc()
		return settlements, nil
	}
	metrics.SettlementCacheOps.WithLabelValues("miss").Inc()

	// Все ожидающие одного окна устаревания получают результат одного запроса.
	v, err, shared := c.group.Do("settlements", func() (any, error) {
		// Запись могла обновиться, пока мы ждали своей очереди.
		if settlements, ok := c.cached(); ok {
			return settlements, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		metrics.SettlementCacheOps.WithLabelValues("refresh_failed").Inc()
		return nil, err
	}
	if shared {
		c.log.Infof(ctx, "settlement refresh shared between concurrent callers")
	}
	return v.([]domain.Settlement), nil
}

// cached — текущая запись, если она ещё валидна.
func (c *SettlementCache) cached() ([]domain.Settlement, bool) {
	c.mu.RLock()
	cur := c.current
	c.mu.RUnlock()

	if cur == nil {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(cur.fetchedAt) >= c.ttl {
		return nil, false
	}
	return cur.settlements, true
}

// refresh — перечитывает источник и публикует новую запись.
func (c *SettlementCache) refresh(ctx context.Context) ([]domain.Settlement, error) {
	start := c.now()
	settlements, err := c.source.Settlements(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.current = &entry{settlements: settlements, fetchedAt: c.now()}
	c.mu.Unlock()

	metrics.SettlementCacheOps.WithLabelValues("refresh").Inc()
	metrics.SettlementsCached.Set(float64(len(settlements)))
	c.log.Infof(ctx, "settlement cache refreshed count=%d took=%s", len(settlements), c.now().Sub(start))
	return settlements, nil
}
