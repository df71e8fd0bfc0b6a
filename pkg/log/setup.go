package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// 생성되는 로그 파일의 기본 확장자
	fileExt = "log"

	// 로그 디렉토리가 지정되지 않았을 때 사용하는 기본 경로
	defaultDir = "logs"

	// 기본 로그 로테이션 정책
	defaultMaxSizeMB  = 100 // 로그 파일 하나당 최대 크기 (단위: MB)
	defaultMaxBackups = 20  // 로테이션 된 로그 파일의 최대 보관 개수
)

var (
	// Setup()이 프로세스 생명주기 동안 단 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	// 최초 초기화 시 생성된 Closer입니다. Setup 재호출 시 동일한 인스턴스를 반환합니다.
	globalCloser io.Closer

	// 최초 초기화의 결과 에러입니다. 실패한 경우 재시도하지 않고 같은 에러를 반환합니다.
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화하고 설정된 옵션에 따라 파일 출력을 구성합니다.
//
// 주의:
//   - 애플리케이션 시작 시점(main 함수 도입부)에 호출하는 것을 권장합니다.
//   - 반환된 Closer는 반드시 defer를 통해 리소스가 해제되도록 보장해야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

// setupInternal 실제 로깅 시스템 초기화 로직을 수행합니다.
func setupInternal(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 실제 포맷팅은 hook에서 수행하므로 기본 출력 경로의 포맷팅 비용을 없앱니다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	logDir := opts.Dir
	if logDir == "" {
		logDir = defaultDir
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	rotation := rotationPolicy{
		dir:        logDir,
		name:       opts.Name,
		maxSizeMB:  opts.MaxSizeMB,
		maxBackups: opts.MaxBackups,
		maxAge:     opts.MaxAge,
	}
	if rotation.maxSizeMB == 0 {
		rotation.maxSizeMB = defaultMaxSizeMB
	}
	if rotation.maxBackups == 0 {
		rotation.maxBackups = defaultMaxBackups
	}

	h := &hook{
		formatter: newTextFormatter(opts.CallerPathPrefix),
	}
	c := &closer{hook: h}

	mainLogger := rotation.writer("")
	h.mainWriter = mainLogger
	c.closers = append(c.closers, mainLogger)

	if opts.EnableCriticalLog {
		criticalLogger := rotation.writer("critical")
		h.criticalWriter = criticalLogger
		c.closers = append(c.closers, criticalLogger)
	}
	if opts.EnableVerboseLog {
		verboseLogger := rotation.writer("verbose")
		h.verboseWriter = verboseLogger
		c.closers = append(c.closers, verboseLogger)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	logrus.AddHook(h)

	// Fatal 로그 발생 시(os.Exit 호출 직전) 남은 로그를 디스크에 기록하고 리소스를 해제합니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

// rotationPolicy 로그 파일의 위치와 로테이션 정책입니다.
type rotationPolicy struct {
	dir        string
	name       string
	maxSizeMB  int
	maxBackups int
	maxAge     int
}

// writer "<name>[.<channel>].log" 파일로 기록하는 로테이션 Writer를 생성합니다.
// lumberjack은 첫 쓰기 시점에 파일을 열기 때문에 여기서는 실패하지 않습니다.
func (p rotationPolicy) writer(channel string) *lumberjack.Logger {
	filename := p.name
	if channel != "" {
		filename += "." + channel
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(p.dir, filename+"."+fileExt),
		MaxSize:    p.maxSizeMB,
		MaxBackups: p.maxBackups,
		MaxAge:     p.maxAge,
		Compress:   false,
		LocalTime:  true,
	}
}
