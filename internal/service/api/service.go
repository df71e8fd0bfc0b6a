// Package api Clarus Mens HTTP API 서버를 구성하고 생명주기를 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/clarusmens/clarus-mens/internal/config"
	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/clarusmens/clarus-mens/internal/service/api/apidoc"
	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/handler/question"
	"github.com/clarusmens/clarus-mens/internal/service/api/handler/system"
	"github.com/clarusmens/clarus-mens/internal/service/api/health"
	"github.com/clarusmens/clarus-mens/internal/service/api/metrics"
	questionsvc "github.com/clarusmens/clarus-mens/internal/service/question"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/http2"
)

// Dependencies API 서비스가 요청 처리에 사용하는 구성 요소입니다.
// Metrics를 제외한 모든 항목은 필수입니다.
type Dependencies struct {
	VersionState  *version.State
	Document      *apidoc.Document
	HealthChecker *health.Checker
	Answerer      questionsvc.Answerer

	// Metrics nil이면 요청 지표를 수집하지 않으며 /metrics 엔드포인트도 등록하지 않습니다.
	Metrics *metrics.Metrics
}

// Service Clarus Mens API 서버의 생명주기를 관리하는 서비스입니다.
//
//   - Echo 기반 HTTP/HTTPS(h2c 선택) 서버 시작 및 종료
//   - 미들웨어 체인과 라우트 구성
//   - Graceful Shutdown (5초 타임아웃)
//   - 예기치 못한 서버 종료 시 FatalErrors 채널로 에러 전달
//
// Start로 시작하고, 전달한 context를 취소하면 종료됩니다.
type Service struct {
	appConfig *config.AppConfig

	deps Dependencies

	fatalErrC chan error

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. 필수 의존성이 nil이면 panic이 발생합니다.
func NewService(appConfig *config.AppConfig, deps Dependencies) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if deps.VersionState == nil {
		panic(constants.PanicMsgVersionStateRequired)
	}
	if deps.Document == nil {
		panic(constants.PanicMsgDocumentRequired)
	}
	if deps.HealthChecker == nil {
		panic(constants.PanicMsgHealthCheckerRequired)
	}
	if deps.Answerer == nil {
		panic(constants.PanicMsgAnswererRequired)
	}

	return &Service{
		appConfig: appConfig,

		deps: deps,

		fatalErrC: make(chan error, 1),
	}
}

// FatalErrors HTTP 서버가 종료 요청 없이 멈췄을 때(포트 바인딩 실패, 인증서 오류 등) 그 원인을 전달합니다.
func (s *Service) FatalErrors() <-chan error {
	return s.fatalErrC
}

// Start API 서비스를 시작합니다.
//
// 서버는 별도의 고루틴에서 실행되며 이 함수는 즉시 반환됩니다. 서비스가 완전히 종료되면
// serviceStopWG.Done()이 호출됩니다. 이미 실행 중이면 경고만 남기고 Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// runServiceLoop 서버 설정, HTTP 서버 시작, Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	httpCfg := s.appConfig.HTTP
	development := s.appConfig.IsDevelopment()

	systemHandler := system.NewHandler(s.deps.VersionState, s.deps.Document, s.deps.HealthChecker)
	questionHandler := question.NewHandler(s.deps.Answerer)

	serverCfg := HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		AllowOrigins:       httpCfg.CORS.AllowOrigins,
		RateLimitPerSecond: httpCfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:     httpCfg.RateLimit.Burst,
		HTTPSRedirect:      httpCfg.HTTPSRedirect && !development,
		EnableHSTS:         httpCfg.TLSServer && !development,
	}

	var metricsHandler http.Handler
	if s.deps.Metrics != nil {
		serverCfg.Metrics = s.deps.Metrics
		metricsHandler = s.deps.Metrics.Handler()
	}

	e := NewHTTPServer(serverCfg)
	RegisterRoutes(e, systemHandler, questionHandler, metricsHandler)

	return e
}

// startHTTPServer 설정에 따라 HTTPS, h2c, HTTP 중 하나로 서버를 시작합니다.
// 서버가 종료될 때까지 블로킹되며, 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	httpCfg := s.appConfig.HTTP
	address := fmt.Sprintf(":%d", httpCfg.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": httpCfg.ListenPort,
		"tls":  httpCfg.TLSServer,
		"h2c":  httpCfg.H2C,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	switch {
	case httpCfg.TLSServer:
		err = e.StartTLS(address, httpCfg.TLSCertFile, httpCfg.TLSKeyFile)
	case httpCfg.H2C:
		err = e.StartH2CServer(address, &http2.Server{})
	default:
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버가 반환한 에러를 처리합니다.
//
//   - nil, http.ErrServerClosed: 정상 종료
//   - 그 외: Error 레벨로 로깅하고 FatalErrors 채널로 전달
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTP.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)

	select {
	case s.fatalErrC <- err:
	default:
	}
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
// 서비스가 완전히 종료될 때까지 블로킹됩니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 이미 종료되었으므로 Shutdown 호출 없이 상태만 정리
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup 서비스 종료 후 상태를 정리합니다.
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
