package constants

// 내부 로깅을 위한 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 서비스 생명주기
	// ------------------------------------------------------------------------------------------------

	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgServiceHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	// ------------------------------------------------------------------------------------------------
	// 핸들러
	// ------------------------------------------------------------------------------------------------

	LogMsgRootInfo         = "루트 정보 조회 요청"
	LogMsgHealthCheck      = "헬스체크 요청"
	LogMsgVersionInfo      = "버전 정보 조회 요청"
	LogMsgOpenAPIDocument  = "OpenAPI 문서 조회 요청"
	LogMsgQuestionReceived = "질문 수신"
	LogMsgQuestionFailed   = "질문 처리 중 오류 발생"

	// ------------------------------------------------------------------------------------------------
	// 에러 핸들러 / 미들웨어
	// ------------------------------------------------------------------------------------------------

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
	LogMsgEnvelopeFallback   = "에러 응답 직렬화 실패, 고정 응답으로 대체합니다"
	LogMsgPanicRecovered     = "PANIC RECOVERED"
	LogMsgRateLimitExceeded  = "Rate limit 초과"
	LogMsgHTTPRequest        = "HTTP 요청"
	LogMsgHealthProbeFailed  = "헬스체크 프로브 실패"
)
