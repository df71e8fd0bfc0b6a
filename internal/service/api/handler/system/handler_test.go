package system

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clarusmens/clarus-mens/docs"
	"github.com/clarusmens/clarus-mens/internal/pkg/semver"
	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/clarusmens/clarus-mens/internal/service/api/apidoc"
	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/health"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// =============================================================================
// Test Helpers
// =============================================================================

// setupSystemHandlerTest 테스트에 필요한 Handler와 의존성을 설정합니다.
// 테스트 격리를 위해 매번 새로운 인스턴스를 생성합니다.
func setupSystemHandlerTest(t *testing.T, env string, probes ...health.Probe) *Handler {
	t.Helper()

	state := version.NewState(semver.MustParse("1.2.3-beta+sha.abc"), 42, version.Info{}, version.StaticEnvironment(env))

	desc, err := apidoc.Build(nil, state.DisplayVersion())
	require.NoError(t, err)

	doc, err := apidoc.NewDocument(apidoc.DefaultDocumentName, docs.SwaggerInfo, desc)
	require.NoError(t, err)

	return NewHandler(state, doc, health.NewChecker(time.Second, probes...))
}

func healthyProbe(name string) health.Probe {
	return health.Probe{Name: name, Check: func(context.Context) error { return nil }}
}

func failingProbe(name string) health.Probe {
	return health.Probe{Name: name, Check: func(context.Context) error { return errors.New("connection refused") }}
}

func serve(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewHandler(t *testing.T) {
	t.Parallel()

	h := setupSystemHandlerTest(t, version.Production)

	state := h.versionState
	doc := h.document
	checker := h.healthChecker

	t.Run("성공: 서버 시작 시간 설정", func(t *testing.T) {
		t.Parallel()

		assert.WithinDuration(t, time.Now(), h.serverStartTime, 5*time.Second)
	})

	t.Run("실패: VersionState가 nil인 경우 Panic", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, constants.PanicMsgVersionStateRequired, func() {
			NewHandler(nil, doc, checker)
		})
	})

	t.Run("실패: Document가 nil인 경우 Panic", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, constants.PanicMsgDocumentRequired, func() {
			NewHandler(state, nil, checker)
		})
	})

	t.Run("실패: HealthChecker가 nil인 경우 Panic", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, constants.PanicMsgHealthCheckerRequired, func() {
			NewHandler(state, doc, nil)
		})
	})
}

// =============================================================================
// Root Tests
// =============================================================================

func TestHandler_RootHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		env         string
		probes      []health.Probe
		wantStatus  string
		wantVersion string
	}{
		{
			name:        "Production: 환경 표시 없음",
			env:         version.Production,
			probes:      []health.Probe{healthyProbe("api_docs")},
			wantStatus:  constants.ServiceStatusOperational,
			wantVersion: "1.2.3-beta+sha.abc",
		},
		{
			name:        "Development: 환경 이름 표시",
			env:         version.Development,
			wantStatus:  constants.ServiceStatusOperational,
			wantVersion: "1.2.3-beta+sha.abc (Development)",
		},
		{
			name:        "의존성 실패 시 degraded",
			env:         version.Staging,
			probes:      []health.Probe{failingProbe("api_docs")},
			wantStatus:  constants.ServiceStatusDegraded,
			wantVersion: "1.2.3-beta+sha.abc (Staging)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := setupSystemHandlerTest(t, tt.env, tt.probes...)
			rec := serve(t, h.RootHandler, "/")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))

			body := rec.Body.String()
			assert.Equal(t, tt.wantStatus, gjson.Get(body, "status").String())
			assert.Equal(t, apidoc.DefaultTitle, gjson.Get(body, "name").String())
			assert.Equal(t, tt.wantVersion, gjson.Get(body, "version").String())
			assert.Equal(t, tt.env, gjson.Get(body, "environment").String())
			assert.Equal(t, apidoc.DefaultLicenseName, gjson.Get(body, "license.name").String())
			assert.Equal(t, apidoc.DefaultLicenseURL, gjson.Get(body, "license.url").String())
			assert.Equal(t, "/swagger", gjson.Get(body, "links.documentation").String())
			assert.Equal(t, "/openapi", gjson.Get(body, "links.openapiSpec").String())
			assert.Equal(t, "/health", gjson.Get(body, "links.health").String())
			assert.Equal(t, constants.LinkSource, gjson.Get(body, "links.source").String())
		})
	}
}

// =============================================================================
// Health Check Tests
// =============================================================================

func TestHandler_HealthCheckHandler(t *testing.T) {
	t.Parallel()

	t.Run("모든 의존성 정상", func(t *testing.T) {
		t.Parallel()

		h := setupSystemHandlerTest(t, version.Production, healthyProbe("api_docs"))
		rec := serve(t, h.HealthCheckHandler, "/health")

		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, constants.HealthStatusHealthy, gjson.Get(body, "status").String())
		assert.GreaterOrEqual(t, gjson.Get(body, "uptime").Int(), int64(0))
		assert.Equal(t, constants.HealthStatusHealthy, gjson.Get(body, "dependencies.api_docs.status").String())
		assert.Equal(t, constants.MsgDepStatusHealthy, gjson.Get(body, "dependencies.api_docs.message").String())
		assert.True(t, gjson.Get(body, "dependencies.api_docs.latencyMs").Exists())
	})

	t.Run("의존성 실패 시 503", func(t *testing.T) {
		t.Parallel()

		h := setupSystemHandlerTest(t, version.Production, healthyProbe("cache"), failingProbe("api_docs"))
		rec := serve(t, h.HealthCheckHandler, "/health")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, constants.HealthStatusUnhealthy, gjson.Get(body, "status").String())
		assert.Equal(t, constants.HealthStatusHealthy, gjson.Get(body, "dependencies.cache.status").String())
		assert.Equal(t, constants.HealthStatusUnhealthy, gjson.Get(body, "dependencies.api_docs.status").String())
		assert.Contains(t, gjson.Get(body, "dependencies.api_docs.message").String(), "connection refused")
	})

	t.Run("의존성이 없으면 정상", func(t *testing.T) {
		t.Parallel()

		h := setupSystemHandlerTest(t, version.Production)
		rec := serve(t, h.HealthCheckHandler, "/health")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, constants.HealthStatusHealthy, gjson.Get(rec.Body.String(), "status").String())
	})
}

// =============================================================================
// Version Tests
// =============================================================================

func TestHandler_VersionHandler(t *testing.T) {
	t.Parallel()

	h := setupSystemHandlerTest(t, version.Development)
	rec := serve(t, h.VersionHandler, "/api/version")

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "1.2.3-beta+sha.abc", gjson.Get(body, "version").String(), "버전 응답에는 환경 이름이 붙지 않아야 합니다")
	assert.Equal(t, int64(1), gjson.Get(body, "semVer.major").Int())
	assert.Equal(t, int64(2), gjson.Get(body, "semVer.minor").Int())
	assert.Equal(t, int64(3), gjson.Get(body, "semVer.patch").Int())
	assert.Equal(t, "beta", gjson.Get(body, "semVer.preRelease").String())
	assert.Equal(t, "sha.abc", gjson.Get(body, "semVer.buildMetadata").String())
	assert.True(t, gjson.Get(body, "semVer.isPreRelease").Bool())
	assert.Equal(t, "1.2.3.42", gjson.Get(body, "assemblyVersion").String())
}

// =============================================================================
// Documentation Tests
// =============================================================================

func TestHandler_OpenAPIHandler(t *testing.T) {
	t.Parallel()

	h := setupSystemHandlerTest(t, version.Staging)
	rec := serve(t, h.OpenAPIHandler, "/openapi")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))

	body := rec.Body.String()
	assert.True(t, gjson.Get(body, "openapi").Exists())
	assert.Equal(t, "1.2.3-beta+sha.abc (Staging)", gjson.Get(body, "info.version").String())
	assert.True(t, gjson.Get(body, "paths./api/question").Exists())
}

func TestHandler_SwaggerDocHandler(t *testing.T) {
	t.Parallel()

	h := setupSystemHandlerTest(t, version.Production)
	rec := serve(t, h.SwaggerDocHandler, "/swagger/doc.json")

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "2.0", gjson.Get(body, "swagger").String())
	assert.Equal(t, "1.2.3-beta+sha.abc", gjson.Get(body, "info.version").String())
	assert.Equal(t, apidoc.DefaultTitle, gjson.Get(body, "info.title").String())
}
