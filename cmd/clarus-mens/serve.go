package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/clarusmens/clarus-mens/docs"
	"github.com/clarusmens/clarus-mens/internal/config"
	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/clarusmens/clarus-mens/internal/service"
	"github.com/clarusmens/clarus-mens/internal/service/api"
	"github.com/clarusmens/clarus-mens/internal/service/api/apidoc"
	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/health"
	"github.com/clarusmens/clarus-mens/internal/service/api/metrics"
	"github.com/clarusmens/clarus-mens/internal/service/question"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
)

const component = "main"

// callerPathPrefix 로그의 호출 위치에서 잘라낼 모듈 경로입니다.
const callerPathPrefix = "github.com/clarusmens/clarus-mens"

// 아스키아트 (폰트: standard)
const banner = "" +
	"   ____ _                           __  __\n" +
	"  / ___| | __ _ _ __ _   _ ___     |  \\/  | ___ _ __  ___\n" +
	" | |   | |/ _` | '__| | | / __|    | |\\/| |/ _ \\ '_ \\/ __|\n" +
	" | |___| | (_| | |  | |_| \\__ \\    | |  | |  __/ | | \\__ \\\n" +
	"  \\____|_|\\__,_|_|   \\__,_|___/    |_|  |_|\\___|_| |_|___/\n" +
	"                                                   %s\n" +
	"--------------------------------------------------------------------------------\n"

// serve 설정을 로드하고 로그 시스템을 초기화한 뒤 ctx가 취소될 때까지 서버를 실행합니다.
func serve(ctx context.Context, opts config.LoadOptions, out io.Writer) error {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithOptions(opts)
	if err != nil {
		return err
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewOptions(config.AppName, appConfig.Debug)
	logOpts.Dir = appConfig.Log.Dir
	if appConfig.Log.MaxAge > 0 {
		logOpts.MaxAge = appConfig.Log.MaxAge
	}
	logOpts.CallerPathPrefix = callerPathPrefix

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패. 서버 구동을 중단합니다: %w", err)
	}
	defer appLogCloser.Close()

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	return runServer(ctx, appConfig, out)
}

// runServer 의존성을 조립하여 API 서비스를 시작하고, ctx가 취소되거나 서버가 예기치 않게 멈출 때까지 대기합니다.
// 서버가 스스로 멈춘 경우 그 원인을 반환합니다.
func runServer(ctx context.Context, appConfig *config.AppConfig, out io.Writer) error {
	versionState := version.Load(version.StaticEnvironment(appConfig.Environment))

	fmt.Fprintf(out, banner, versionState.DisplayVersion())

	deps, err := buildDependencies(appConfig, versionState)
	if err != nil {
		return err
	}
	apiService := api.NewService(appConfig, deps)

	serviceStopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	applog.WithComponentAndFields(component, versionState.Info().LogFields()).WithFields(applog.Fields{
		"environment":      versionState.Environment().Name(),
		"assembly_version": versionState.AssemblyVersion(),
	}).Infof("Application started. Version: %s", versionState.DisplayVersion())

	var runErr error
	select {
	case <-ctx.Done():
		applog.WithComponent(component).Info("Shutdown signal received")
	case runErr = <-apiService.FatalErrors():
		applog.WithComponentAndFields(component, applog.Fields{
			"error": runErr,
		}).Error("API 서버가 예기치 않게 종료되어 프로그램을 종료합니다")
	}

	cancel()
	serviceStopWG.Wait()

	return runErr
}

// buildDependencies API 서비스가 사용할 구성 요소를 생성합니다.
func buildDependencies(appConfig *config.AppConfig, versionState *version.State) (api.Dependencies, error) {
	descriptor, err := apidoc.Build(appConfig.Values(), versionState.DisplayVersion())
	if err != nil {
		return api.Dependencies{}, err
	}

	document, err := apidoc.NewDocument(apidoc.DocumentName(appConfig.Values()), docs.SwaggerInfo, descriptor)
	if err != nil {
		return api.Dependencies{}, err
	}

	checker := health.NewChecker(health.DefaultTimeout, health.Probe{
		Name:  constants.DependencyAPIDocs,
		Check: health.JSONDocumentProbe(document.ReadDoc),
	})

	return api.Dependencies{
		VersionState:  versionState,
		Document:      document,
		HealthChecker: checker,
		Answerer:      question.NewDefaultAnswerer(),
		Metrics:       metrics.New(versionState),
	}, nil
}
