// Package log logrus 기반의 애플리케이션 로깅 기능을 제공합니다.
//
// 모든 로그는 레벨에 따라 main/critical/verbose 파일과 콘솔로 분배되며,
// 각 컴포넌트는 WithComponent로 "component" 필드를 붙여 로그를 남깁니다.
//
//	applog.WithComponent("api.service").Info("HTTP 서버를 시작합니다")
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// componentField 로그를 남긴 컴포넌트를 식별하는 필드 이름입니다.
const componentField = "component"

// WithComponent 컴포넌트 이름이 포함된 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentField, component)
}

// WithComponentAndFields 컴포넌트 이름과 추가 필드가 포함된 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentField] = component

	return logrus.WithFields(merged)
}

// WithFields 필드가 포함된 로그 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// StandardLogger 전역 Logger를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetLevel 전역 로그 레벨을 설정합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// GetLevel 전역 로그 레벨을 반환합니다.
func GetLevel() Level {
	return logrus.GetLevel()
}

// SetOutput 전역 Logger의 출력 대상을 설정합니다.
func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

// SetFormatter 전역 Logger의 포맷터를 설정합니다.
func SetFormatter(formatter Formatter) {
	logrus.SetFormatter(formatter)
}
