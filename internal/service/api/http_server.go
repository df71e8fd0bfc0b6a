package api

import (
	"net/http"
	"time"

	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/httputil"
	appmiddleware "github.com/clarusmens/clarus-mens/internal/service/api/middleware"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	// 운영 환경에서는 특정 도메인만 명시합니다 (예: ["https://example.com"])
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0이면 기본값 60초)
	RequestTimeout time.Duration

	// RateLimitPerSecond IP별 초당 허용 요청 수 (0이면 속도 제한을 적용하지 않음)
	RateLimitPerSecond float64

	// RateLimitBurst IP별 버스트 허용량 (0이면 속도 제한을 적용하지 않음)
	RateLimitBurst int

	// HTTPSRedirect HTTP 요청을 HTTPS로 리다이렉트할지 여부
	HTTPSRedirect bool

	// EnableHSTS Strict-Transport-Security 헤더를 추가할지 여부 (TLS 서버에서만 사용)
	EnableHSTS bool

	// Metrics 요청 지표 기록기 (nil이면 지표를 수집하지 않음)
	Metrics appmiddleware.RequestRecorder
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어에서 발생한 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID - ULID 기반 X-Request-ID 부여 (로그에 request_id 포함)
//  3. HTTPSRedirect - 설정 시 HTTP 요청을 HTTPS로 리다이렉트
//  4. HTTPLogger - 요청/응답 로깅 (429/503 응답도 기록됨)
//  5. Metrics - Prometheus 요청 지표 수집
//  6. RateLimit - IP 기반 요청 제한 (설정 시)
//  7. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  8. ContextTimeout - 요청 Context에 처리 기한 설정 (기한 초과 에러는 503)
//  9. CORS - Cross-Origin Resource Sharing
//  10. Secure - 보안 헤더 (X-Content-Type-Options, HSTS 등)
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 프레임워크의 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.NewLogger(applog.StandardLogger())

	e.JSONSerializer = httputil.JSONSerializer{}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	// 1. Panic 복구
	e.Use(appmiddleware.PanicRecovery())

	// 2. Request ID
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return ulid.Make().String()
		},
	}))

	// 3. HTTPS 리다이렉트
	if cfg.HTTPSRedirect {
		e.Pre(middleware.HTTPSRedirect())
	}

	// 4. HTTP 로깅
	e.Use(appmiddleware.HTTPLogger())

	// 5. 요청 지표
	if cfg.Metrics != nil {
		e.Use(appmiddleware.Metrics(cfg.Metrics))
	}

	// 6. Rate Limiting
	if cfg.RateLimitPerSecond > 0 && cfg.RateLimitBurst > 0 {
		e.Use(appmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// 7. Body Limit
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))

	// 8. Timeout
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))

	// 9. CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))

	// 10. 보안 헤더
	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = constants.DefaultHSTSMaxAge
	}
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}
