package constants

// 루트 엔드포인트가 안내하는 링크입니다.
const (
	LinkDocumentation = "/swagger"
	LinkOpenAPISpec   = "/openapi"
	LinkHealth        = "/health"
	LinkSource        = "https://github.com/pstackebrandt/clarus-mens"
)

// HTTP 헤더 키 상수입니다.
const (
	// RetryAfter 429 응답에서 재시도 대기 시간(초)을 알리는 헤더
	RetryAfter = "Retry-After"
)
