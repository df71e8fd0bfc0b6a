// Package errors 타입으로 분류되는 애플리케이션 에러를 제공합니다.
//
// 모든 에러는 ErrorType을 가지며 Wrap으로 원인 에러를 감싸 체인을 만들 수 있습니다.
// API 계층의 전역 에러 핸들러는 HTTPStatus로 체인의 가장 안쪽 타입을 응답 상태 코드로 바꿉니다.
//
//	err := errors.New(errors.InvalidInput, "라이선스 URL 형식이 올바르지 않습니다")
//
//	if err != nil {
//	    return errors.Wrap(err, errors.Internal, "응답 본문 직렬화에 실패했습니다")
//	}
//
//	if errors.Is(err, errors.InvalidInput) {
//	    // 설정 오류 처리
//	}
//
// 타입 선택 기준:
//   - Internal: 버그로 간주되는 내부 로직 오류 (직렬화 실패, 문서 렌더링 실패)
//   - System: 파일이나 네트워크 같은 인프라 장애 (설정 파일 없음, 포트 사용 중)
//   - InvalidInput: 설정값이나 요청 파라미터 검증 실패
//   - Timeout, Unavailable: 헬스체크 프로브의 시간 초과나 일시적 사용 불가
package errors

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AppError 타입, 메시지, 원인, 생성 위치의 스택을 가지는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

func (e *AppError) Type() ErrorType { return e.errType }

func (e *AppError) Message() string { return e.message }

func (e *AppError) Stack() []StackFrame { return e.stack }

// Error "[타입] 메시지: 원인" 형태의 문자열을 반환합니다.
func (e *AppError) Error() string {
	head := "[" + e.errType.String() + "] " + e.message
	if e.cause == nil {
		return head
	}
	return head + ": " + e.cause.Error()
}

func (e *AppError) Unwrap() error { return e.cause }

// Format %+v로 출력하면 에러 체인을 한 줄씩 풀어 쓰고, 체인 끝의 AppError에는 스택을 덧붙입니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		e.writeVerbose(s)
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Error())
	case verb == 'v' || verb == 's':
		io.WriteString(s, e.Error())
	}
}

func (e *AppError) writeVerbose(s fmt.State) {
	fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

	var inner *AppError
	if e.cause == nil || !errors.As(e.cause, &inner) {
		writeStack(s, e.stack)
	}

	if e.cause == nil {
		return
	}
	io.WriteString(s, "\nCaused by:\n")
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, 'v')
		return
	}
	fmt.Fprintf(s, "\t%v", e.cause)
}

func writeStack(w io.Writer, stack []StackFrame) {
	if len(stack) == 0 {
		return
	}
	io.WriteString(w, "\nStack trace:")
	for _, frame := range stack {
		fn := frame.Function
		if i := strings.LastIndex(fn, "/"); i >= 0 {
			fn = fn[i+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", frame.File, frame.Line, fn)
	}
}

// newAppError 공개 생성 함수들이 공유하는 생성자입니다.
// 스택은 공개 함수를 호출한 위치부터 기록됩니다.
func newAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		errType: errType,
		message: message,
		cause:   cause,
		stack:   captureStack(callerSkip),
	}
}

// New 새 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return newAppError(errType, message, nil)
}

func Newf(errType ErrorType, format string, args ...any) error {
	return newAppError(errType, fmt.Sprintf(format, args...), nil)
}

// Wrap err을 원인으로 하는 새 에러를 생성합니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, message, err)
}

func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, fmt.Sprintf(format, args...), err)
}

// eachAppError 체인을 바깥에서 안쪽으로 따라가며 AppError마다 fn을 호출합니다.
// fn이 false를 반환하면 중단합니다.
func eachAppError(err error, fn func(*AppError) bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok && !fn(appErr) {
			return
		}
	}
}

// Is 체인에 errType 타입의 AppError가 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	found := false
	eachAppError(err, func(e *AppError) bool {
		found = e.errType == errType
		return !found
	})
	return found
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// UnderlyingType 체인에서 가장 안쪽 AppError의 타입을 반환합니다. AppError가 없으면 Unknown입니다.
//
//	err := Wrap(New(InvalidInput, "질문이 비어있습니다"), Internal, "요청 처리 실패")
//	UnderlyingType(err) // InvalidInput
func UnderlyingType(err error) ErrorType {
	t := Unknown
	eachAppError(err, func(e *AppError) bool {
		t = e.errType
		return true
	})
	return t
}

// HTTPStatus 체인의 가장 안쪽 타입에 대응하는 HTTP 상태 코드를 반환합니다.
// AppError가 없는 에러는 500입니다.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return UnderlyingType(err).HTTPStatus()
}

// Message 체인에서 가장 바깥쪽 AppError의 메시지를 반환합니다.
func Message(err error) string {
	msg := ""
	eachAppError(err, func(e *AppError) bool {
		msg = e.message
		return false
	})
	return msg
}
