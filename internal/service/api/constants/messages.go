package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 일반 HTTP 에러 (상태 코드 순)
	// ------------------------------------------------------------------------------------------------

	// 400 Bad Request
	ErrMsgBadRequest = "Bad Request"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "Too many requests. Please try again later."

	// 500 Internal Server Error
	ErrMsgInternalServer = "Internal Server Error"

	// ------------------------------------------------------------------------------------------------
	// 질문 엔드포인트
	// ------------------------------------------------------------------------------------------------

	// ErrMsgQuestionEmpty 질문이 비어 있을 때의 메시지
	ErrMsgQuestionEmpty = "Question cannot be empty"

	// ErrMsgQuestionTooLong 질문이 최대 길이를 넘었을 때의 메시지
	ErrMsgQuestionTooLong = "Question is too long. Maximum length is 500 characters."

	// ErrTitleQuestionProcessing 답변 생성 실패 시 Problem 응답의 제목
	ErrTitleQuestionProcessing = "Error processing question"

	// ErrDetailQuestionProcessing 답변 생성 실패 시 Problem 응답의 상세 내용
	ErrDetailQuestionProcessing = "An unexpected error occurred while processing your question."
)
