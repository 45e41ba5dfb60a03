package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders accepted through the storefront API",
		},
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_notifications_total",
			Help: "New-order notifications by outcome",
		},
		[]string{"outcome"}, // sent|failed|skipped
	)
)

var (
	DirectoryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novaposhta_requests_total",
			Help: "Requests to the Nova Poshta directory API",
		},
		[]string{"method", "outcome"}, // outcome: ok|error
	)
	SettlementCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_cache_operations_total",
			Help: "Settlement cache operations",
		},
		[]string{"op"}, // hit|miss|refresh|refresh_failed
	)
	SettlementsCached = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "settlements_cached",
			Help: "Number of settlements in the current cache entry",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		OrdersCreated, Notifications,
		DirectoryRequests, SettlementCacheOps, SettlementsCached,
	)
}
