package middleware

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// maxTrackedClients 메모리에 유지하는 최대 클라이언트(IP) 수입니다.
// 한도에 도달하면 가장 오래 요청이 없었던 클라이언트를 제거한 뒤 새 클라이언트를 등록합니다.
const maxTrackedClients = 10000

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter 클라이언트 IP마다 독립된 Token Bucket을 관리합니다.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client

	limit rate.Limit
	burst int

	now func() time.Time
}

func newClientLimiter(requestsPerSecond float64, burst int) *clientLimiter {
	return &clientLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// reserve ip의 토큰 하나를 소비합니다. 토큰이 없으면 소비하지 않고, 다음 토큰까지 남은 시간을 반환합니다.
// 반환값이 0이면 요청을 허용합니다.
func (l *clientLimiter) reserve(ip string) time.Duration {
	now := l.now()

	l.mu.Lock()
	cl, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= maxTrackedClients {
			l.evictIdlest()
		}
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	l.mu.Unlock()

	r := cl.limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Second
	}

	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

// evictIdlest 가장 오래 요청이 없었던 클라이언트를 제거합니다. l.mu를 보유한 상태에서 호출해야 합니다.
func (l *clientLimiter) evictIdlest() {
	var (
		idlest string
		oldest time.Time
		found  bool
	)
	for ip, cl := range l.clients {
		if !found || cl.lastSeen.Before(oldest) {
			idlest, oldest, found = ip, cl.lastSeen, true
		}
	}
	if found {
		delete(l.clients, idlest)
	}
}

func (l *clientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit 클라이언트 IP별 요청 속도를 제한하는 미들웨어를 반환합니다.
//
// IP마다 초당 requestsPerSecond개의 토큰이 채워지는 버킷(크기 burst)을 두고 요청마다 토큰 하나를 소비합니다.
// 토큰이 없으면 다음 토큰까지의 대기 시간(초, 올림)을 Retry-After 헤더에 담아 429를 반환합니다.
// requestsPerSecond에는 0.5 처럼 1 미만의 값도 사용할 수 있습니다.
//
//	e.Use(middleware.RateLimit(20, 40))
//
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimit(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}

	return rateLimit(newClientLimiter(requestsPerSecond, burst))
}

func rateLimit(limiter *clientLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			delay := limiter.reserve(ip)
			if delay <= 0 {
				return next(c)
			}

			retryAfter := retryAfterSeconds(delay)

			applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
				"remote_ip":   ip,
				"method":      c.Request().Method,
				"path":        c.Request().URL.Path,
				"retry_after": retryAfter,
			}).Warn(constants.LogMsgRateLimitExceeded)

			c.Response().Header().Set(constants.RetryAfter, retryAfter)

			return ErrRateLimitExceeded
		}
	}
}

// retryAfterSeconds 대기 시간을 Retry-After 헤더 값(정수 초, 최소 1)으로 변환합니다.
func retryAfterSeconds(delay time.Duration) string {
	seconds := int(math.Ceil(delay.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
