// Package metrics API 서버의 Prometheus 지표를 정의하고 노출합니다.
//
// 기본 전역 Registry 대신 서버마다 독립된 Registry를 사용하므로 테스트에서 여러 인스턴스를
// 만들어도 중복 등록 충돌이 없습니다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clarus_mens"

// Metrics HTTP 요청 지표와 빌드 정보 지표를 보관합니다.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// New 새 Registry에 Go 런타임/프로세스 수집기와 HTTP 지표, 빌드 정보 지표를 등록합니다.
//
// clarus_mens_build_info 게이지는 항상 1이며 버전 정보는 레이블로 제공됩니다.
func New(state *version.State) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed, partitioned by method, route and status code",
		}, []string{"method", "route", "code"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent processing HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		}),
	}

	buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information of the running server, value is always 1",
	}, []string{"version", "assembly_version", "environment", "commit", "go_version"})

	if state != nil {
		info := state.Info()
		buildInfo.WithLabelValues(
			state.SemVer().String(),
			state.AssemblyVersion(),
			state.Environment().Name(),
			info.Commit,
			info.GoVersion,
		).Set(1)
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.requestsInFlight,
		buildInfo,
	)

	return m
}

// Registry 지표가 등록된 Registry를 반환합니다.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler Prometheus 텍스트 형식으로 지표를 노출하는 http.Handler를 반환합니다.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestStarted 처리 중인 요청 수를 1 증가시킵니다.
func (m *Metrics) RequestStarted() {
	m.requestsInFlight.Inc()
}

// RequestFinished 완료된 요청을 기록하고 처리 중인 요청 수를 1 감소시킵니다.
//
// route는 "/api/question" 처럼 등록된 경로 패턴이어야 합니다. 실제 URL을 넘기면
// 레이블 카디널리티가 무한히 커질 수 있습니다.
func (m *Metrics) RequestFinished(method, route string, status int, elapsed time.Duration) {
	m.requestsInFlight.Dec()
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
