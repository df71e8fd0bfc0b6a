package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// RequestRecorder 요청 처리 지표를 기록합니다. *metrics.Metrics가 이를 구현합니다.
type RequestRecorder interface {
	RequestStarted()
	RequestFinished(method, route string, status int, elapsed time.Duration)
}

// unmatchedRoute 라우트에 매칭되지 않은 요청(404 등)의 route 레이블 값입니다.
const unmatchedRoute = "unmatched"

// Metrics 요청 수, 처리 시간, 처리 중인 요청 수를 기록하는 미들웨어를 반환합니다.
//
// 핸들러가 반환한 에러는 이 미들웨어에서 c.Error로 처리한 뒤 최종 상태 코드를 기록합니다.
// route 레이블에는 실제 URL 대신 등록된 경로 패턴(c.Path)을 사용합니다.
func Metrics(recorder RequestRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			recorder.RequestStarted()

			defer func() {
				route := c.Path()
				if route == "" {
					route = unmatchedRoute
				}
				recorder.RequestFinished(c.Request().Method, route, c.Response().Status, time.Since(start))
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		}
	}
}
