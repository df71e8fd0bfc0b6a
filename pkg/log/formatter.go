package log

import (
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// silentFormatter 전역 로거에 설정되는 빈 포맷터입니다.
// 실제 출력은 Hook이 채널별 포맷터로 직접 수행하므로, 전역 로거의 포맷팅 비용을 없앱니다.
type silentFormatter struct{}

func (silentFormatter) Format(*logrus.Entry) ([]byte, error) {
	return nil, nil
}

// newTextFormatter 파일과 콘솔 출력에 공통으로 사용하는 TextFormatter를 생성합니다.
//
// 호출 위치는 "함수(line:N)" 형태로 기록되며, callerPathPrefix로 시작하는 함수 경로는
// 접두사를 "..."으로 줄여서 표시합니다.
func newTextFormatter(callerPathPrefix string) *TextFormatter {
	return &TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
			return shortenCaller(frame.Function, callerPathPrefix) + "(line:" + strconv.Itoa(frame.Line) + ")", ""
		},
	}
}

func shortenCaller(function, prefix string) string {
	if prefix == "" {
		return function
	}
	if rest, ok := strings.CutPrefix(function, prefix); ok {
		return "..." + rest
	}
	return function
}
