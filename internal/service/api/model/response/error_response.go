// Package response 모든 엔드포인트가 공유하는 에러 응답 모델을 제공합니다.
package response

// ErrorResponse 요청 검증 실패 등 클라이언트 오류 응답
type ErrorResponse struct {
	// 에러 메시지
	Error string `json:"error" example:"Question cannot be empty"`
}

// ProblemResponse 서버 측 처리 실패를 설명하는 Problem Details(RFC 9457) 형식의 응답
type ProblemResponse struct {
	// 문제 유형을 식별하는 URI
	Type string `json:"type,omitempty" example:"https://tools.ietf.org/html/rfc9110#section-15.6.1"`
	// 문제의 짧은 요약
	Title string `json:"title" example:"Error processing question"`
	// HTTP 상태 코드
	Status int `json:"status,omitempty" example:"500"`
	// 문제의 상세 설명
	Detail string `json:"detail,omitempty" example:"An unexpected error occurred while processing your question."`
}
