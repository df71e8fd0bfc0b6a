package log

import (
	"github.com/sirupsen/logrus"
)

// 호출하는 패키지가 logrus를 직접 import 하지 않도록 자주 쓰는 타입과 레벨을 다시 내보냅니다.

type (
	Level         = logrus.Level
	Fields        = logrus.Fields
	Entry         = logrus.Entry
	Hook          = logrus.Hook
	Logger        = logrus.Logger
	Formatter     = logrus.Formatter
	JSONFormatter = logrus.JSONFormatter
	TextFormatter = logrus.TextFormatter
)

// 심각도 순(높음 → 낮음)으로 정렬된 로그 레벨입니다.
// Panic과 Fatal은 로그를 남긴 뒤 각각 panic()과 os.Exit(1)을 호출합니다.
const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel
	ErrorLevel Level = logrus.ErrorLevel
	WarnLevel  Level = logrus.WarnLevel
	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
	TraceLevel Level = logrus.TraceLevel
)

var AllLevels = logrus.AllLevels

