package errors

import (
	"path/filepath"
	"runtime"
)

// callerSkip runtime.Callers, captureStack, newAppError, 공개 생성 함수(New/Wrap 등)를 건너뛰어
// 에러를 만든 호출자가 첫 프레임이 되도록 합니다.
const callerSkip = 4

// maxStackFrames 에러 하나에 기록하는 최대 프레임 수입니다.
const maxStackFrames = 5

// StackFrame 스택 프레임 하나입니다. File은 디렉터리를 뺀 파일 이름입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func captureStack(skip int) []StackFrame {
	var pcs [maxStackFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]StackFrame, 0, n)
	for {
		f, more := frames.Next()
		stack = append(stack, StackFrame{File: filepath.Base(f.File), Line: f.Line, Function: f.Function})
		if !more {
			return stack
		}
	}
}
