package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/clarusmens/clarus-mens/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// HTTPLogger 요청 하나가 끝날 때마다 접근 로그 한 줄을 남기는 미들웨어를 반환합니다.
//
// 로그 레벨은 응답 상태 코드로 결정됩니다. 5xx는 Error, 4xx는 Warn, 나머지는 Info입니다.
// URI에 포함된 민감한 쿼리 파라미터(constants.SensitiveQueryParams)의 값은 마스킹됩니다.
// 핸들러가 panic을 일으켜도 defer로 로그를 남긴 뒤 panic을 그대로 전파합니다.
//
//	e.Use(middleware.HTTPLogger())
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			defer func() {
				logAccess(c, time.Since(start))
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		}
	}
}

func logAccess(c echo.Context, latency time.Duration) {
	req := c.Request()
	res := c.Response()

	bytesIn := req.ContentLength
	if bytesIn < 0 {
		bytesIn = 0
	}

	route := c.Path()
	if route == "" {
		route = unmatchedRoute
	}

	entry := applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
		"method":     req.Method,
		"route":      route,
		"uri":        redactQuery(req.RequestURI),
		"protocol":   req.Proto,
		"remote_ip":  c.RealIP(),
		"user_agent": req.UserAgent(),
		"status":     res.Status,
		"bytes_in":   bytesIn,
		"bytes_out":  res.Size,
		"latency_ms": float64(latency.Microseconds()) / 1000,
		"request_id": res.Header().Get(echo.HeaderXRequestID),
	})

	switch {
	case res.Status >= 500:
		entry.Error(constants.LogMsgHTTPRequest)
	case res.Status >= 400:
		entry.Warn(constants.LogMsgHTTPRequest)
	default:
		entry.Info(constants.LogMsgHTTPRequest)
	}
}

// redactQuery URI의 쿼리 문자열에서 민감한 파라미터의 값을 strutil.Mask로 가립니다.
// 파라미터 이름은 대소문자를 구분하지 않으며, 나머지 파라미터와 순서는 원본 그대로 유지됩니다.
func redactQuery(uri string) string {
	path, rawQuery, found := strings.Cut(uri, "?")
	if !found || rawQuery == "" {
		return uri
	}

	pairs := strings.Split(rawQuery, "&")
	redacted := false
	for i, pair := range pairs {
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !isSensitiveParam(key) {
			continue
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			value = rawValue
		}
		pairs[i] = rawKey + "=" + url.QueryEscape(strutil.Mask(value))
		redacted = true
	}

	if !redacted {
		return uri
	}
	return path + "?" + strings.Join(pairs, "&")
}

func isSensitiveParam(key string) bool {
	for _, p := range constants.SensitiveQueryParams {
		if strings.EqualFold(key, p) {
			return true
		}
	}
	return false
}
