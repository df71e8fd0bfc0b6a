package constants

import "time"

// 보안 관련 상수입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기 (128KB)
	// 이 서비스의 엔드포인트는 모두 GET이므로 작게 유지합니다.
	DefaultMaxBodySize = "128K"

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (10초)
	// 헤더를 매우 느리게 전송하는 클라이언트(Slowloris)가 연결을 점유하지 못하게 합니다.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultHSTSMaxAge HTTPS 응답에 붙는 Strict-Transport-Security max-age (1년, 초 단위)
	DefaultHSTSMaxAge = 31536000
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"password",
	"token",
	"secret",
}
