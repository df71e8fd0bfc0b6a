package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/httputil"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// =============================================================================
// Test Helpers
// =============================================================================

// captureServerLogs 테스트 동안 전역 로거의 출력을 JSON 형식으로 모으고, 종료 시 원래 설정을 복구합니다.
func captureServerLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	out, formatter, level := logger.Out, logger.Formatter, logger.Level

	buf := new(bytes.Buffer)
	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		applog.SetOutput(out)
		applog.SetFormatter(formatter)
		applog.SetLevel(level)
	})

	return buf
}

// newQuestionServer /api/question 에 질문을 그대로 돌려주는 핸들러를 등록한 서버를 생성합니다.
func newQuestionServer(cfg HTTPServerConfig) *echo.Echo {
	if cfg.AllowOrigins == nil {
		cfg.AllowOrigins = []string{"*"}
	}

	e := NewHTTPServer(cfg)
	e.GET("/api/question", func(c echo.Context) error {
		return httputil.OK(c, map[string]string{"answer": c.QueryParam("query")})
	})
	e.POST("/api/question", func(c echo.Context) error {
		var body map[string]any
		if err := c.Bind(&body); err != nil {
			return err
		}
		return c.NoContent(http.StatusAccepted)
	})
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return serve(e, req)
}

// =============================================================================
// Echo 설정
// =============================================================================

func TestNewHTTPServer_EchoSettings(t *testing.T) {
	for _, debug := range []bool{true, false} {
		e := NewHTTPServer(HTTPServerConfig{Debug: debug})

		assert.Equal(t, debug, e.Debug)
		assert.True(t, e.HideBanner, "echo 배너는 항상 숨겨야 합니다")
		assert.True(t, e.HidePort)
		assert.IsType(t, httputil.JSONSerializer{}, e.JSONSerializer)
		require.NotNil(t, e.Logger)

		assert.Equal(t, constants.DefaultReadTimeout, e.Server.ReadTimeout)
		assert.Equal(t, constants.DefaultReadHeaderTimeout, e.Server.ReadHeaderTimeout)
		assert.Equal(t, constants.DefaultWriteTimeout, e.Server.WriteTimeout)
		assert.Equal(t, constants.DefaultIdleTimeout, e.Server.IdleTimeout)
	}
}

// =============================================================================
// 응답 헤더
// =============================================================================

func TestNewHTTPServer_ResponseHeaders(t *testing.T) {
	e := newQuestionServer(HTTPServerConfig{})
	rec := get(e, "/api/question?query=hi", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	headers := rec.Header()
	assert.Empty(t, headers.Get(echo.HeaderServer))
	assert.Equal(t, "nosniff", headers.Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "SAMEORIGIN", headers.Get(echo.HeaderXFrameOptions))
	assert.Equal(t, "1; mode=block", headers.Get(echo.HeaderXXSSProtection))

	_, err := ulid.ParseStrict(headers.Get(echo.HeaderXRequestID))
	assert.NoError(t, err, "요청 ID는 ULID로 생성되어야 합니다")
}

func TestNewHTTPServer_KeepsClientRequestID(t *testing.T) {
	e := newQuestionServer(HTTPServerConfig{})

	rec := get(e, "/api/question?query=hi", map[string]string{echo.HeaderXRequestID: "trace-1234"})

	assert.Equal(t, "trace-1234", rec.Header().Get(echo.HeaderXRequestID))
}

func TestNewHTTPServer_HSTS(t *testing.T) {
	tests := []struct {
		name       string
		enableHSTS bool
		proto      string
		wantHSTS   string
	}{
		{"HTTPS 요청 + HSTS 활성화", true, "https", "max-age=31536000"},
		{"HTTPS 요청 + HSTS 비활성화", false, "https", ""},
		{"HTTP 요청에는 붙지 않음", true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newQuestionServer(HTTPServerConfig{EnableHSTS: tt.enableHSTS})

			headers := map[string]string{}
			if tt.proto != "" {
				headers[echo.HeaderXForwardedProto] = tt.proto
			}
			rec := get(e, "/api/question?query=hi", headers)

			if tt.wantHSTS == "" {
				assert.Empty(t, rec.Header().Get(echo.HeaderStrictTransportSecurity))
			} else {
				assert.Contains(t, rec.Header().Get(echo.HeaderStrictTransportSecurity), tt.wantHSTS)
			}
		})
	}
}

func TestNewHTTPServer_HTTPSRedirect(t *testing.T) {
	e := newQuestionServer(HTTPServerConfig{HTTPSRedirect: true})

	req := httptest.NewRequest(http.MethodGet, "/api/question?query=hi", nil)
	req.Host = "api.example.com"
	rec := serve(e, req)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://api.example.com/api/question?query=hi", rec.Header().Get(echo.HeaderLocation))
}

// =============================================================================
// CORS
// =============================================================================

func TestNewHTTPServer_CORS(t *testing.T) {
	tests := []struct {
		name          string
		allowOrigins  []string
		origin        string
		preflight     bool
		wantStatus    int
		wantAllowed   string
		wantMethodsIn []string
	}{
		{
			name:          "와일드카드 Preflight",
			allowOrigins:  []string{"*"},
			origin:        "https://app.example.com",
			preflight:     true,
			wantStatus:    http.StatusNoContent,
			wantAllowed:   "*",
			wantMethodsIn: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		},
		{
			name:         "허용된 Origin",
			allowOrigins: []string{"https://app.example.com"},
			origin:       "https://app.example.com",
			wantStatus:   http.StatusOK,
			wantAllowed:  "https://app.example.com",
		},
		{
			name:         "허용되지 않은 Origin은 헤더 없이 처리",
			allowOrigins: []string{"https://app.example.com"},
			origin:       "https://evil.example.com",
			wantStatus:   http.StatusOK,
			wantAllowed:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newQuestionServer(HTTPServerConfig{AllowOrigins: tt.allowOrigins})

			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/api/question?query=hi", nil)
			req.Header.Set(echo.HeaderOrigin, tt.origin)
			if tt.preflight {
				req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
			}

			rec := serve(e, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			allowMethods := rec.Header().Get(echo.HeaderAccessControlAllowMethods)
			for _, m := range tt.wantMethodsIn {
				assert.Contains(t, allowMethods, m)
			}
		})
	}
}

// =============================================================================
// 에러 처리 경로
// =============================================================================

func TestNewHTTPServer_ErrorPaths(t *testing.T) {
	tests := []struct {
		name       string
		cfg        HTTPServerConfig
		register   func(e *echo.Echo)
		request    func() *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name: "등록되지 않은 경로",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Not Found",
		},
		{
			name: "핸들러 panic은 500으로 복구",
			register: func(e *echo.Echo) {
				e.GET("/api/boom", func(c echo.Context) error { panic("answer table corrupted") })
			},
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/boom", nil)
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  constants.ErrMsgInternalServer,
		},
		{
			name: "본문 크기 초과",
			request: func() *http.Request {
				body := `{"q":"` + strings.Repeat("a", 200*1024) + `"}`
				req := httptest.NewRequest(http.MethodPost, "/api/question", strings.NewReader(body))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				return req
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  http.StatusText(http.StatusRequestEntityTooLarge),
		},
		{
			name: "처리 기한 초과",
			cfg:  HTTPServerConfig{RequestTimeout: 20 * time.Millisecond},
			register: func(e *echo.Echo) {
				e.GET("/api/slow", func(c echo.Context) error {
					<-c.Request().Context().Done()
					return c.Request().Context().Err()
				})
			},
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/slow", nil)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureServerLogs(t)

			e := newQuestionServer(tt.cfg)
			if tt.register != nil {
				tt.register(e)
			}

			var rec *httptest.ResponseRecorder
			require.NotPanics(t, func() { rec = serve(e, tt.request()) })

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, gjson.Get(rec.Body.String(), "error").String())
			}
		})
	}
}

func TestNewHTTPServer_PanicIsLogged(t *testing.T) {
	buf := captureServerLogs(t)

	e := newQuestionServer(HTTPServerConfig{})
	e.GET("/api/boom", func(c echo.Context) error { panic("answer table corrupted") })

	serve(e, httptest.NewRequest(http.MethodGet, "/api/boom", nil))

	assert.Contains(t, buf.String(), "answer table corrupted")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

// =============================================================================
// 접근 로그
// =============================================================================

func TestNewHTTPServer_AccessLog(t *testing.T) {
	buf := captureServerLogs(t)

	e := newQuestionServer(HTTPServerConfig{})
	get(e, "/api/question?query=hello", map[string]string{echo.HeaderXRequestID: "req-1"})

	var access string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if gjson.Get(line, "msg").String() == constants.LogMsgHTTPRequest {
			access = line
		}
	}
	require.NotEmpty(t, access, "접근 로그가 기록되어야 합니다")

	assert.Equal(t, "/api/question", gjson.Get(access, "route").String())
	assert.Equal(t, "/api/question?query=hello", gjson.Get(access, "uri").String())
	assert.EqualValues(t, http.StatusOK, gjson.Get(access, "status").Int())
	assert.Equal(t, "req-1", gjson.Get(access, "request_id").String())
}

// =============================================================================
// 속도 제한
// =============================================================================

func TestNewHTTPServer_RateLimit(t *testing.T) {
	tests := []struct {
		name       string
		rps        float64
		burst      int
		wantStatus int
	}{
		{"속도 제한 활성화", 1, 2, http.StatusTooManyRequests},
		{"RPS 0이면 비활성화", 0, 2, http.StatusOK},
		{"Burst 0이면 비활성화", 1, 0, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureServerLogs(t)

			e := newQuestionServer(HTTPServerConfig{RateLimitPerSecond: tt.rps, RateLimitBurst: tt.burst})

			var rec *httptest.ResponseRecorder
			for i := 0; i < 3; i++ {
				rec = get(e, "/api/question?query=hi", map[string]string{echo.HeaderXRealIP: "10.0.0.1"})
			}

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Equal(t, constants.ErrMsgTooManyRequests, gjson.Get(rec.Body.String(), "error").String())
				assert.Equal(t, "1", rec.Header().Get(constants.RetryAfter))
			}
		})
	}
}

// =============================================================================
// 요청 지표
// =============================================================================

type countingRecorder struct {
	started   int
	finished  int
	lastRoute string
}

func (r *countingRecorder) RequestStarted() { r.started++ }

func (r *countingRecorder) RequestFinished(_ string, route string, _ int, _ time.Duration) {
	r.finished++
	r.lastRoute = route
}

func TestNewHTTPServer_MetricsRecorder(t *testing.T) {
	recorder := &countingRecorder{}
	e := newQuestionServer(HTTPServerConfig{Metrics: recorder})

	for i := 0; i < 3; i++ {
		get(e, "/api/question?query=hi", nil)
	}

	assert.Equal(t, 3, recorder.started)
	assert.Equal(t, 3, recorder.finished)
	assert.Equal(t, "/api/question", recorder.lastRoute)
}
