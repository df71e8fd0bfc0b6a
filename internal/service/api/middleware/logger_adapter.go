package middleware

import (
	"io"

	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo의 log.Logger 인터페이스를 애플리케이션 로거로 연결하는 어댑터입니다.
//
// Echo 내부에서 남기는 모든 로그에는 component=api.echo 필드가 붙습니다.
// Prefix/Header 기능은 사용하지 않습니다.
type Logger struct {
	*applog.Logger
}

// NewLogger l을 감싼 Logger를 반환합니다. l이 nil이면 전역 Logger를 사용합니다.
func NewLogger(l *applog.Logger) Logger {
	if l == nil {
		l = applog.StandardLogger()
	}
	return Logger{Logger: l}
}

func (l Logger) entry() *applog.Entry {
	return l.Logger.WithField("component", constants.ComponentEcho)
}

// Output 현재 출력 Writer를 반환합니다.
func (l Logger) Output() io.Writer {
	return l.Logger.Out
}

func (l Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

func (l Logger) Prefix() string {
	return ""
}

func (l Logger) SetPrefix(string) {}

// Level 애플리케이션 로그 레벨을 Echo의 로그 레벨로 변환합니다.
// Trace는 DEBUG로, Fatal/Panic은 ERROR로 취급합니다.
func (l Logger) Level() log.Lvl {
	switch l.Logger.Level {
	case applog.TraceLevel, applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel, applog.FatalLevel, applog.PanicLevel:
		return log.ERROR
	}

	return log.OFF
}

// SetLevel Echo의 로그 레벨을 애플리케이션 로그 레벨로 변환하여 설정합니다.
// log.OFF는 대응하는 레벨이 없어 Panic 레벨로 설정합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(applog.DebugLevel)
	case log.INFO:
		l.Logger.SetLevel(applog.InfoLevel)
	case log.WARN:
		l.Logger.SetLevel(applog.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(applog.ErrorLevel)
	case log.OFF:
		l.Logger.SetLevel(applog.PanicLevel)
	}
}

func (l Logger) SetHeader(string) {}

func (l Logger) Print(i ...interface{})                    { l.entry().Print(i...) }
func (l Logger) Printf(format string, args ...interface{}) { l.entry().Printf(format, args...) }
func (l Logger) Printj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Print() }

func (l Logger) Debug(i ...interface{})                    { l.entry().Debug(i...) }
func (l Logger) Debugf(format string, args ...interface{}) { l.entry().Debugf(format, args...) }
func (l Logger) Debugj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Debug() }

func (l Logger) Info(i ...interface{})                    { l.entry().Info(i...) }
func (l Logger) Infof(format string, args ...interface{}) { l.entry().Infof(format, args...) }
func (l Logger) Infoj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Info() }

func (l Logger) Warn(i ...interface{})                    { l.entry().Warn(i...) }
func (l Logger) Warnf(format string, args ...interface{}) { l.entry().Warnf(format, args...) }
func (l Logger) Warnj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Warn() }

func (l Logger) Error(i ...interface{})                    { l.entry().Error(i...) }
func (l Logger) Errorf(format string, args ...interface{}) { l.entry().Errorf(format, args...) }
func (l Logger) Errorj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Error() }

func (l Logger) Fatal(i ...interface{})                    { l.entry().Fatal(i...) }
func (l Logger) Fatalf(format string, args ...interface{}) { l.entry().Fatalf(format, args...) }
func (l Logger) Fatalj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Fatal() }

func (l Logger) Panic(i ...interface{})                    { l.entry().Panic(i...) }
func (l Logger) Panicf(format string, args ...interface{}) { l.entry().Panicf(format, args...) }
func (l Logger) Panicj(j log.JSON)                         { l.entry().WithFields(applog.Fields(j)).Panic() }
