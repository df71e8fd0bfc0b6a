package api

import (
	"net/http"

	"github.com/clarusmens/clarus-mens/internal/service/api/handler/question"
	"github.com/clarusmens/clarus-mens/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes API 서비스의 모든 라우트를 등록합니다.
//
//   - 시스템 엔드포인트: 서비스 개요(/), 헬스체크(/health), 버전(/api/version)
//   - 질문 엔드포인트: /api/question
//   - API 문서: OpenAPI 3 문서(/openapi), Swagger UI(/swagger/*)
//   - 지표: Prometheus(/metrics), metricsHandler가 nil이면 등록하지 않음
func RegisterRoutes(e *echo.Echo, sh *system.Handler, qh *question.Handler, metricsHandler http.Handler) {
	registerSystemRoutes(e, sh)
	registerQuestionRoutes(e, qh)
	registerDocumentationRoutes(e, sh)

	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}

func registerSystemRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/", h.RootHandler)
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/api/version", h.VersionHandler)
}

func registerQuestionRoutes(e *echo.Echo, h *question.Handler) {
	e.GET("/api/question", h.AnswerHandler)
}

func registerDocumentationRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/openapi", h.OpenAPIHandler)

	// Swagger UI가 읽는 문서는 설정 기반 메타데이터가 반영된 문서로 직접 제공합니다.
	e.GET("/swagger/doc.json", h.SwaggerDocHandler)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		// 딥 링크 활성화 (특정 API로 바로 이동 가능한 URL 지원)
		echoSwagger.DeepLinking(true),
		// 문서 로드 시 태그(Tag) 목록만 펼침 상태로 표시 ("list", "full", "none")
		echoSwagger.DocExpansion("list"),
	))
}
