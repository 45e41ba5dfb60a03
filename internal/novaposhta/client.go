package novaposhta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
	"github.com/kriselko/backend/pkg/metrics"
)

// Проверка, что Client реализует порты справочника.
var (
	_ ports.SettlementSource = (*Client)(nil)
	_ ports.WarehouseSource  = (*Client)(nil)
)

// ErrAPI — базовая ошибка справочника Новой Почты.
// Оборачивает и транспортные сбои (не-2xx), и логические (success=false);
// вызывающие стороны их дальше не различают.
var ErrAPI = errors.New("nova poshta api error")

const (
	// Типы населённых пунктов, допустимые как пункт доставки.
	settlementTypeCity  = "місто"
	settlementTypeUrban = "селище міського типу"

	defaultTimeout  = 15 * time.Second
	defaultPageSize = 500
	defaultMaxPages = 200
)

// Config — параметры клиента справочника.
type Config struct {
	APIURL   string        // адрес единственного эндпоинта
	APIKey   string        // ключ, передаваемый в теле каждого запроса
	Timeout  time.Duration // таймаут одного HTTP-вызова
	PageSize int           // Limit для постраничного getSettlements
	MaxPages int           // предохранитель от бесконечной пагинации
}

// Client — клиент справочника адресов Новой Почты.
// Один POST-эндпоинт, метод и параметры в JSON-теле. Без ретраев:
// единственный неудачный вызов валит всю операцию.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	pageSize   int
	maxPages   int
	log        ports.Logger
}

// ukCollator — сортировка по украинским правилам, как localeCompare(..., 'uk')
// на витрине. Коллатор не потокобезопасен, поэтому создаётся на каждый вызов.
func ukCollator() *collate.Collator { return collate.New(language.Ukrainian) }

// NewClient — конструктор. Нулевые параметры конфигурации заменяются дефолтами.
func NewClient(cfg Config, log ports.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		maxPages:   maxPages,
		log:        log,
	}
}

// apiRequest — тело запроса к API (все значения methodProperties — строки).
type apiRequest struct {
	APIKey           string            `json:"apiKey"`
	ModelName        string            `json:"modelName"`
	CalledMethod     string            `json:"calledMethod"`
	MethodProperties map[string]string `json:"methodProperties"`
}

// apiResponse — конверт ответа API.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// settlementRecord — сырая запись getSettlements (только нужные поля).
type settlementRecord struct {
	Ref                       string `json:"Ref"`
	Description               string `json:"Description"`
	SettlementTypeDescription string `json:"SettlementTypeDescription"`
}

// warehouseRecord — сырая запись getWarehouses.
type warehouseRecord struct {
	Ref         string `json:"Ref"`
	Description string `json:"Description"`
}

// call — один вызов API: POST JSON, разбор конверта, классификация ошибок.
func (c *Client) call(ctx context.Context, method string, props map[string]string) (json.RawMessage, error) {
	body, err := json.Marshal(apiRequest{
		APIKey:           c.apiKey,
		ModelName:        "Address",
		CalledMethod:     method,
		MethodProperties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.DirectoryRequests.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrAPI, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.DirectoryRequests.WithLabelValues(method, "error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Errorf(ctx, "np api http %d method=%s body=%s", resp.StatusCode, method, snippet)
		return nil, fmt.Errorf("%w: %s: http status %d", ErrAPI, method, resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.DirectoryRequests.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%w: %s: decode response: %v", ErrAPI, method, err)
	}

	if !envelope.Success {
		metrics.DirectoryRequests.WithLabelValues(method, "error").Inc()
		msg := "Unknown API Error"
		if len(envelope.Errors) > 0 {
			msg = strings.Join(envelope.Errors, "; ")
		}
		c.log.Errorf(ctx, "np api logical error method=%s props=%v err=%s", method, props, msg)
		return nil, fmt.Errorf("%w: %s", ErrAPI, msg)
	}

	metrics.DirectoryRequests.WithLabelValues(method, "ok").Inc()
	return envelope.Data, nil
}

// Settlements — полный список населённых пунктов.
// Постранично вызывает getSettlements (Limit=pageSize, Page=1..) до пустой
// страницы; maxPages — предохранитель на случай нарушения контракта источником.
// Затем фильтр по типу, маппинг в domain.Settlement и украинская сортировка.
func (c *Client) Settlements(ctx context.Context) ([]domain.Settlement, error) {
	var raw []settlementRecord

	for page := 1; ; page++ {
		if page > c.maxPages {
			return nil, fmt.Errorf("%w: getSettlements: page limit %d exceeded, upstream never returned an empty page", ErrAPI, c.maxPages)
		}

		data, err := c.call(ctx, "getSettlements", map[string]string{
			"Limit": strconv.Itoa(c.pageSize),
			"Page":  strconv.Itoa(page),
		})
		if err != nil {
			return nil, err
		}

		var records []settlementRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: getSettlements: decode data: %v", ErrAPI, err)
		}
		if len(records) == 0 {
			break
		}
		raw = append(raw, records...)
	}

	settlements := make([]domain.Settlement, 0, len(raw))
	for _, rec := range raw {
		if rec.SettlementTypeDescription != settlementTypeCity &&
			rec.SettlementTypeDescription != settlementTypeUrban {
			continue
		}
		settlements = append(settlements, domain.Settlement{Ref: rec.Ref, Name: rec.Description})
	}

	col := ukCollator()
	sort.SliceStable(settlements, func(i, j int) bool {
		return col.CompareString(settlements[i].Name, settlements[j].Name) < 0
	})

	c.log.Infof(ctx, "np settlements fetched total=%d kept=%d", len(raw), len(settlements))
	return settlements, nil
}

// Warehouses — отделения по Ref населённого пункта. Единственная страница:
// количество отделений в пределах одного пункта ограничено лимитом 1000.
func (c *Client) Warehouses(ctx context.Context, settlementRef string) ([]domain.Warehouse, error) {
	data, err := c.call(ctx, "getWarehouses", map[string]string{
		"SettlementRef": settlementRef,
		"Page":          "1",
		"Limit":         "1000",
	})
	if err != nil {
		return nil, err
	}

	var records []warehouseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: getWarehouses: decode data: %v", ErrAPI, err)
	}

	warehouses := make([]domain.Warehouse, 0, len(records))
	for _, rec := range records {
		warehouses = append(warehouses, domain.Warehouse{Ref: rec.Ref, Name: rec.Description})
	}

	col := ukCollator()
	sort.SliceStable(warehouses, func(i, j int) bool {
		return col.CompareString(warehouses[i].Name, warehouses[j].Name) < 0
	})

	return warehouses, nil
}
