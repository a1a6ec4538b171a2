// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型：
//   - Counter：只增不减（请求数、书评提交数）
//   - Gauge：可增可减（处理中的请求数、熔断器状态）
//   - Histogram：观测值分布（请求耗时）
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值的维度（method、route、status），不要用user_id。
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// HTTPRequestsTotal HTTP请求总数，标签：method、route、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时，标签：method、route
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// ReviewOperationsTotal 书评操作数，标签：operation（submit/update/delete）、result（success/conflict/not_found/error）
	ReviewOperationsTotal *prometheus.CounterVec

	// BooksCreatedTotal 新增图书数，标签：mode（single/bulk）
	BooksCreatedTotal *prometheus.CounterVec

	// RateLimitedTotal 被限流拒绝的请求数，标签：route
	RateLimitedTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态 0=CLOSED 1=OPEN 2=HALF_OPEN，标签：name
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求数，标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 消息发布数，标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 可重复调用，只会注册一次
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "route", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "route"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		ReviewOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "review_operations_total",
				Help: "书评操作总数",
			},
			[]string{"operation", "result"},
		)

		BooksCreatedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_created_total",
				Help: "新增图书总数",
			},
			[]string{"mode"},
		)

		RateLimitedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_rate_limited_total",
				Help: "被限流拒绝的请求数",
			},
			[]string{"route"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// =========================================
// 便捷函数（指标未初始化时为空操作）
// =========================================

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter != nil {
		counter.With(labels).Inc()
	}
}

// AddCounterVec 带标签的Counter增加指定值
func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, value float64) {
	if counter != nil {
		counter.With(labels).Add(value)
	}
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Inc()
	}
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Dec()
	}
}

// SetGaugeVec 设置带标签的Gauge
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge != nil {
		gauge.With(labels).Set(value)
	}
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram != nil {
		histogram.With(labels).Observe(value)
	}
}

// RecordReview 记录一次书评操作
func RecordReview(operation, result string) {
	IncCounterVec(ReviewOperationsTotal, map[string]string{"operation": operation, "result": result})
}
