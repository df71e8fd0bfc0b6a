package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// resetGlobalState Setup이 다시 실행될 수 있도록 패키지 및 logrus 전역 상태를 초기화합니다.
func resetGlobalState() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
}

func setupLogTest(t *testing.T) string {
	t.Helper()

	resetGlobalState()
	t.Cleanup(resetGlobalState)

	return t.TempDir()
}

func readLogFile(t *testing.T, dir, filename string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	return string(content)
}

// =============================================================================
// Setup Tests (전역 상태를 사용하므로 병렬로 실행하지 않습니다)
// =============================================================================

func TestSetup_Validation(t *testing.T) {
	dir := setupLogTest(t)

	c, err := Setup(Options{Dir: dir})

	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")

	// 최초 실패 결과는 재호출 시에도 그대로 유지됩니다.
	_, err2 := Setup(Options{Name: "clarus-mens", Dir: dir})
	assert.Equal(t, err, err2)
}

func TestSetup_LevelSeparation(t *testing.T) {
	dir := setupLogTest(t)

	opts := NewProductionOptions("clarus-mens")
	opts.Dir = dir
	opts.Level = TraceLevel

	c, err := Setup(opts)
	require.NoError(t, err)

	WithComponent("api.service").Info("info-message")
	WithComponent("api.service").Error("error-message")
	WithComponent("api.service").Debug("debug-message")

	require.NoError(t, c.Close())

	main := readLogFile(t, dir, "clarus-mens.log")
	critical := readLogFile(t, dir, "clarus-mens.critical.log")
	verbose := readLogFile(t, dir, "clarus-mens.verbose.log")

	assert.Contains(t, main, "info-message")
	assert.Contains(t, main, "error-message")
	assert.NotContains(t, main, "debug-message")
	assert.Contains(t, main, "component=api.service")

	assert.Contains(t, critical, "error-message")
	assert.NotContains(t, critical, "info-message")

	assert.Contains(t, verbose, "debug-message")
	assert.NotContains(t, verbose, "info-message")
}

func TestSetup_Once(t *testing.T) {
	dir := setupLogTest(t)

	opts := NewDevelopmentOptions("clarus-mens")
	opts.Dir = dir
	opts.EnableConsoleLog = false

	var wg sync.WaitGroup
	closers := make([]io.Closer, 10)
	for i := range closers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := Setup(opts)
			assert.NoError(t, err)
			closers[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range closers[1:] {
		assert.Same(t, closers[0], c)
	}
	assert.Len(t, logrus.StandardLogger().Hooks[InfoLevel], 1, "Hook은 한 번만 등록되어야 합니다")
	assert.NoError(t, closers[0].Close())
}

func TestSetup_DefaultLevel(t *testing.T) {
	dir := setupLogTest(t)

	c, err := Setup(Options{Name: "clarus-mens", Dir: dir})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, InfoLevel, GetLevel())
}

func TestSetup_DirIsFile(t *testing.T) {
	dir := setupLogTest(t)
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Setup(Options{Name: "clarus-mens", Dir: file})

	assert.Error(t, err)
}
