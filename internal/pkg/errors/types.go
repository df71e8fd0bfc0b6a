package errors

import (
	"net/http"
	"strconv"
)

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (응답 직렬화 실패, 예상치 못한 상태 등)
	Internal

	// System 시스템 또는 인프라 오류 (설정 파일 읽기, 로그 디렉토리 생성 등)
	System

	// InvalidInput 잘못된 입력값 (설정값 검증 실패, 요청 파라미터 검증 실패)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// Timeout 작업 시간 초과 (헬스체크 프로브 등)
	Timeout

	// Unavailable 서비스 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:      "Unknown",
	Internal:     "Internal",
	System:       "System",
	InvalidInput: "InvalidInput",
	NotFound:     "NotFound",
	Timeout:      "Timeout",
	Unavailable:  "Unavailable",
}

// String 에러 타입의 이름을 반환합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}

// HTTPStatus 에러 타입에 대응하는 HTTP 상태 코드를 반환합니다.
func (t ErrorType) HTTPStatus() int {
	switch t {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Timeout:
		return http.StatusGatewayTimeout
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
