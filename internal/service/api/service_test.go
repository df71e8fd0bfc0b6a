package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/clarusmens/clarus-mens/docs"
	"github.com/clarusmens/clarus-mens/internal/config"
	"github.com/clarusmens/clarus-mens/internal/pkg/semver"
	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/clarusmens/clarus-mens/internal/service/api/apidoc"
	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/health"
	"github.com/clarusmens/clarus-mens/internal/service/api/metrics"
	questionsvc "github.com/clarusmens/clarus-mens/internal/service/question"
	"github.com/clarusmens/clarus-mens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/goleak"
)

// =============================================================================
// Fixtures
// =============================================================================

// newTestDependencies 1.4.0-beta (Development) 상태의 실제 구성 요소를 생성합니다.
func newTestDependencies(t *testing.T) Dependencies {
	t.Helper()

	state := version.NewState(semver.MustParse("1.4.0-beta"), 3, version.Info{}, version.StaticEnvironment(version.Development))

	desc, err := apidoc.Build(nil, state.DisplayVersion())
	require.NoError(t, err)

	doc, err := apidoc.NewDocument(apidoc.DefaultDocumentName, docs.SwaggerInfo, desc)
	require.NoError(t, err)

	return Dependencies{
		VersionState: state,
		Document:     doc,
		HealthChecker: health.NewChecker(time.Second, health.Probe{
			Name:  constants.DependencyAPIDocs,
			Check: health.JSONDocumentProbe(doc.ReadDoc),
		}),
		Answerer: questionsvc.NewDefaultAnswerer(),
		Metrics:  metrics.New(state),
	}
}

func newTestAppConfig(port int) *config.AppConfig {
	appConfig := config.Default()
	appConfig.Environment = version.Development
	appConfig.Debug = true
	appConfig.HTTP.ListenPort = port
	return &appConfig
}

// runningService 빈 포트에서 시작된 서비스와 종료 수단을 묶은 것입니다.
type runningService struct {
	*Service

	port   int
	wg     *sync.WaitGroup
	cancel context.CancelFunc
}

// startService 빈 포트로 서비스를 만들고 configure로 설정을 조정한 뒤 시작합니다.
// waitReady가 true이면 포트가 열릴 때까지 기다립니다. 테스트가 끝나면 자동으로 종료됩니다.
func startService(t *testing.T, configure func(*config.AppConfig), waitReady bool) *runningService {
	t.Helper()

	port, err := testutil.GetFreePort()
	require.NoError(t, err)

	appConfig := newTestAppConfig(port)
	if configure != nil {
		configure(appConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rs := &runningService{
		Service: NewService(appConfig, newTestDependencies(t)),
		port:    port,
		wg:      &sync.WaitGroup{},
		cancel:  cancel,
	}
	t.Cleanup(cancel)

	rs.wg.Add(1)
	require.NoError(t, rs.Start(ctx, rs.wg), "Start는 서버를 비동기로 띄우므로 에러를 반환하지 않아야 합니다")

	if waitReady {
		require.NoError(t, testutil.WaitForServer(port, 2*time.Second))
	}
	return rs
}

// stop 서비스를 종료하고 timeout 안에 WaitGroup이 끝나는지 확인합니다.
func (rs *runningService) stop(t *testing.T, timeout time.Duration) {
	t.Helper()

	rs.cancel()
	waitFor(t, rs.wg, timeout)
}

func (rs *runningService) isRunning() bool {
	rs.runningMu.Lock()
	defer rs.runningMu.Unlock()
	return rs.running
}

func waitFor(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("%s 안에 서비스가 종료되지 않았습니다", timeout)
	}
}

// =============================================================================
// 생성
// =============================================================================

func TestNewService(t *testing.T) {
	appConfig := newTestAppConfig(8080)
	deps := newTestDependencies(t)

	s := NewService(appConfig, deps)

	assert.Same(t, appConfig, s.appConfig)
	assert.Same(t, deps.Document, s.deps.Document)
	assert.False(t, s.running)
	assert.NotNil(t, s.FatalErrors())
}

func TestNewService_MissingDependency(t *testing.T) {
	appConfig := newTestAppConfig(8080)
	base := newTestDependencies(t)

	tests := []struct {
		name      string
		appConfig *config.AppConfig
		drop      func(d *Dependencies)
		wantPanic string
	}{
		{"AppConfig", nil, func(*Dependencies) {}, constants.PanicMsgAppConfigRequired},
		{"VersionState", appConfig, func(d *Dependencies) { d.VersionState = nil }, constants.PanicMsgVersionStateRequired},
		{"Document", appConfig, func(d *Dependencies) { d.Document = nil }, constants.PanicMsgDocumentRequired},
		{"HealthChecker", appConfig, func(d *Dependencies) { d.HealthChecker = nil }, constants.PanicMsgHealthCheckerRequired},
		{"Answerer", appConfig, func(d *Dependencies) { d.Answerer = nil }, constants.PanicMsgAnswererRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name+" 누락", func(t *testing.T) {
			d := base
			tt.drop(&d)

			assert.PanicsWithValue(t, tt.wantPanic, func() { NewService(tt.appConfig, d) })
		})
	}
}

// =============================================================================
// 서버 구성
// =============================================================================

func TestService_setupServer_Routes(t *testing.T) {
	tests := []struct {
		name        string
		withMetrics bool
		want        []string
		notWant     []string
	}{
		{
			name:        "지표 수집 활성화",
			withMetrics: true,
			want: []string{
				"GET /", "GET /api/question", "GET /api/version", "GET /health",
				"GET /openapi", "GET /swagger/doc.json", "GET /swagger/*", "GET /metrics",
			},
		},
		{
			name:    "지표 수집 비활성화",
			want:    []string{"GET /", "GET /api/question"},
			notWant: []string{"GET /metrics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDependencies(t)
			if !tt.withMetrics {
				deps.Metrics = nil
			}

			e := NewService(newTestAppConfig(8080), deps).setupServer()
			assert.True(t, e.Debug)

			routes := make(map[string]struct{})
			for _, r := range e.Routes() {
				routes[r.Method+" "+r.Path] = struct{}{}
			}
			for _, w := range tt.want {
				assert.Contains(t, routes, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, routes, w)
			}
		})
	}
}

// =============================================================================
// 서버 에러 처리
// =============================================================================

func TestService_handleServerError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFatal bool
	}{
		{"nil", nil, false},
		{"정상 종료(http.ErrServerClosed)", http.ErrServerClosed, false},
		{"예상치 못한 에러", assert.AnError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(newTestAppConfig(8080), newTestDependencies(t))

			s.handleServerError(tt.err)

			select {
			case err := <-s.FatalErrors():
				require.True(t, tt.wantFatal, "전달되지 않아야 할 에러가 전달되었습니다: %v", err)
				assert.Equal(t, tt.err, err)
			default:
				assert.False(t, tt.wantFatal, "FatalErrors로 전달되어야 합니다")
			}
		})
	}
}

func TestService_handleServerError_DoesNotBlock(t *testing.T) {
	s := NewService(newTestAppConfig(8080), newTestDependencies(t))

	done := make(chan struct{})
	go func() {
		s.handleServerError(assert.AnError)
		s.handleServerError(assert.AnError)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("읽는 쪽이 없어도 handleServerError는 블로킹되지 않아야 합니다")
	}
	assert.Len(t, s.FatalErrors(), 1)
}

// =============================================================================
// TLS
// =============================================================================

func TestService_TLS_MissingCertificate(t *testing.T) {
	rs := startService(t, func(c *config.AppConfig) {
		c.HTTP.TLSServer = true
		c.HTTP.TLSCertFile = filepath.Join("missing", "cert.pem")
		c.HTTP.TLSKeyFile = filepath.Join("missing", "key.pem")
	}, false)

	select {
	case err := <-rs.FatalErrors():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("인증서 로드 실패가 FatalErrors로 전달되지 않았습니다")
	}

	waitFor(t, rs.wg, 2*time.Second)
	assert.False(t, rs.isRunning())
}

func TestService_TLS_ServesHTTPSWithHSTS(t *testing.T) {
	certFile, keyFile := testutil.GenerateSelfSignedCert(t)

	rs := startService(t, func(c *config.AppConfig) {
		c.Environment = version.Staging
		c.HTTP.TLSServer = true
		c.HTTP.TLSCertFile = certFile
		c.HTTP.TLSKeyFile = keyFile
	}, true)

	client := &http.Client{
		Timeout:   2 * time.Second,
		Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
	}
	defer client.CloseIdleConnections()

	resp, err := client.Get(fmt.Sprintf("https://localhost:%d/health", rs.port))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, resp.TLS)
	assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"), "Development 이외 환경의 TLS 응답에는 HSTS가 붙어야 합니다")

	rs.stop(t, 6*time.Second)
}

// =============================================================================
// 생명주기
// =============================================================================

func TestService_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rs := startService(t, nil, true)
	assert.True(t, rs.isRunning())

	began := time.Now()
	rs.stop(t, 6*time.Second)

	assert.Less(t, time.Since(began), constants.DefaultShutdownTimeout+time.Second)
	assert.False(t, rs.isRunning())
}

func TestService_RepeatedStartIsIgnored(t *testing.T) {
	rs := startService(t, nil, true)

	// 실행 중이면 Start가 바로 Done()을 호출하므로 미리 Add 해 둔다.
	rs.wg.Add(1)
	assert.NoError(t, rs.Start(context.Background(), rs.wg))
	assert.True(t, rs.isRunning())

	rs.stop(t, 6*time.Second)
}

func TestService_ConcurrentStart(t *testing.T) {
	rs := startService(t, nil, true)

	const callers = 10
	errs := make(chan error, callers)
	var callersWG sync.WaitGroup

	for i := 0; i < callers; i++ {
		rs.wg.Add(1)
		callersWG.Add(1)
		go func() {
			defer callersWG.Done()
			errs <- rs.Start(context.Background(), rs.wg)
		}()
	}
	callersWG.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	rs.stop(t, 10*time.Second)
}

// =============================================================================
// 엔드포인트
// =============================================================================

func TestService_ServesEndpoints(t *testing.T) {
	rs := startService(t, nil, true)

	client := &http.Client{Timeout: 2 * time.Second}
	fetch := func(path string) (int, string) {
		t.Helper()

		resp, err := client.Get(fmt.Sprintf("http://localhost:%d%s", rs.port, path))
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	tests := []struct {
		path   string
		status int
		check  func(t *testing.T, body string)
	}{
		{"/", http.StatusOK, func(t *testing.T, body string) {
			assert.Equal(t, "1.4.0-beta (Development)", gjson.Get(body, "version").String())
			assert.Equal(t, constants.ServiceStatusOperational, gjson.Get(body, "status").String())
		}},
		{"/api/question?query=hello", http.StatusOK, func(t *testing.T, body string) {
			assert.Equal(t, "Hello there! How can I help you?", gjson.Get(body, "answer").String())
		}},
		{"/api/question", http.StatusBadRequest, func(t *testing.T, body string) {
			assert.Equal(t, constants.ErrMsgQuestionEmpty, gjson.Get(body, "error").String())
		}},
		{"/api/version", http.StatusOK, func(t *testing.T, body string) {
			assert.Equal(t, "1.4.0.3", gjson.Get(body, "assemblyVersion").String())
		}},
		{"/health", http.StatusOK, func(t *testing.T, body string) {
			assert.Equal(t, constants.HealthStatusHealthy, gjson.Get(body, "dependencies.api_docs.status").String())
		}},
		// 앞선 요청들이 기록된 뒤에 조회해야 한다.
		{"/metrics", http.StatusOK, func(t *testing.T, body string) {
			assert.Contains(t, body, `clarus_mens_http_requests_total{code="200",method="GET",route="/api/question"} 1`)
			assert.Contains(t, body, `clarus_mens_http_requests_total{code="400",method="GET",route="/api/question"} 1`)
		}},
	}

	for _, tt := range tests {
		status, body := fetch(tt.path)
		assert.Equal(t, tt.status, status, tt.path)
		tt.check(t, body)
	}

	rs.stop(t, 6*time.Second)
}
