// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 서비스 개요, 헬스체크, 버전 정보, API 문서 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"time"

	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/clarusmens/clarus-mens/internal/service/api/apidoc"
	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/health"
	"github.com/clarusmens/clarus-mens/internal/service/api/httputil"
	"github.com/clarusmens/clarus-mens/internal/service/api/model/system"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	versionState *version.State

	document *apidoc.Document

	healthChecker *health.Checker

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(versionState *version.State, document *apidoc.Document, healthChecker *health.Checker) *Handler {
	if versionState == nil {
		panic(constants.PanicMsgVersionStateRequired)
	}
	if document == nil {
		panic(constants.PanicMsgDocumentRequired)
	}
	if healthChecker == nil {
		panic(constants.PanicMsgHealthCheckerRequired)
	}

	return &Handler{
		versionState: versionState,

		document: document,

		healthChecker: healthChecker,

		serverStartTime: time.Now(),
	}
}

// RootHandler godoc
// @Summary 서비스 개요
// @Description 서비스 이름, 표시용 버전, 실행 환경, 라이선스와 주요 리소스 링크를 반환합니다.
// @Description 의존성 헬스체크 결과에 따라 status가 operational 또는 degraded로 보고됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.RootResponse "서비스 개요"
// @Router / [get]
func (h *Handler) RootHandler(c echo.Context) error {
	logRequest(c, "/", constants.LogMsgRootInfo)

	status := constants.ServiceStatusOperational
	if !h.healthChecker.Check(c.Request().Context()).Healthy() {
		status = constants.ServiceStatusDegraded
	}

	d := h.document.Descriptor()

	return httputil.OK(c, system.RootResponse{
		Status:      status,
		Name:        d.Title,
		Version:     h.versionState.DisplayVersion(),
		Environment: h.versionState.Environment().Name(),
		License: system.LicenseInfo{
			Name: d.License.Name,
			URL:  d.License.URL,
		},
		Links: system.Links{
			Documentation: constants.LinkDocumentation,
			OpenAPISpec:   constants.LinkOpenAPISpec,
			Health:        constants.LinkHealth,
			Source:        constants.LinkSource,
		},
	})
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "모든 의존성이 정상"
// @Failure 503 {object} system.HealthResponse "하나 이상의 의존성이 비정상"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	logRequest(c, "/health", constants.LogMsgHealthCheck)

	report := h.healthChecker.Check(c.Request().Context())

	deps := make(map[string]system.DependencyStatus, len(report.Results))
	for _, name := range report.Names() {
		res := report.Results[name]

		dep := system.DependencyStatus{
			Status:    constants.HealthStatusHealthy,
			LatencyMs: res.Latency.Milliseconds(),
			Message:   constants.MsgDepStatusHealthy,
		}
		if !res.Healthy() {
			dep.Status = constants.HealthStatusUnhealthy
			dep.Message = res.Err.Error()

			applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
				"dependency": name,
				"error":      res.Err,
			}).Warn(constants.LogMsgHealthProbeFailed)
		}
		deps[name] = dep
	}

	resp := system.HealthResponse{
		Status:       constants.HealthStatusHealthy,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	}
	if !report.Healthy() {
		resp.Status = constants.HealthStatusUnhealthy
		return httputil.WithStatus(c, http.StatusServiceUnavailable, resp)
	}

	return httputil.OK(c, resp)
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 정규 SemVer 문자열과 구성 요소, 어셈블리 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /api/version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	logRequest(c, "/api/version", constants.LogMsgVersionInfo)

	v := h.versionState.SemVer()

	return httputil.OK(c, system.VersionResponse{
		Version: v.String(),
		SemVer: system.SemVerResponse{
			Major:         v.Major(),
			Minor:         v.Minor(),
			Patch:         v.Patch(),
			PreRelease:    v.PreRelease(),
			BuildMetadata: v.BuildMetadata(),
			IsPreRelease:  v.IsPreRelease(),
		},
		AssemblyVersion: h.versionState.AssemblyVersion(),
	})
}

// OpenAPIHandler godoc
// @Summary OpenAPI 3 문서
// @Description 이 문서를 OpenAPI 3 형식으로 변환하여 반환합니다.
// @Tags Documentation
// @Produce json
// @Success 200 {object} object "OpenAPI 3 문서"
// @Router /openapi [get]
func (h *Handler) OpenAPIHandler(c echo.Context) error {
	logRequest(c, "/openapi", constants.LogMsgOpenAPIDocument)

	return httputil.Envelope{
		StatusCode:  http.StatusOK,
		ContentType: httputil.ContentTypeJSON,
		Body:        h.document.OpenAPI3(),
	}.Send(c)
}

// SwaggerDocHandler Swagger UI가 읽는 Swagger 2.0 문서(doc.json)를 반환합니다.
func (h *Handler) SwaggerDocHandler(c echo.Context) error {
	return httputil.Envelope{
		StatusCode:  http.StatusOK,
		ContentType: httputil.ContentTypeJSON,
		Body:        []byte(h.document.ReadDoc()),
	}.Send(c)
}

func logRequest(c echo.Context, endpoint, msg string) {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  endpoint,
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(msg)
}
