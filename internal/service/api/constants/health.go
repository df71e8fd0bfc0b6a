package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 헬스체크 상태
	// ------------------------------------------------------------------------------------------------

	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// ------------------------------------------------------------------------------------------------
	// 루트 엔드포인트 상태
	// ------------------------------------------------------------------------------------------------

	// ServiceStatusOperational 모든 의존성이 정상일 때 루트 엔드포인트가 보고하는 상태
	ServiceStatusOperational = "operational"

	// ServiceStatusDegraded 하나 이상의 의존성이 비정상일 때 루트 엔드포인트가 보고하는 상태
	ServiceStatusDegraded = "degraded"

	// ------------------------------------------------------------------------------------------------
	// 외부 의존성
	// ------------------------------------------------------------------------------------------------

	// DependencyAPIDocs 외부 의존성 ID: API 문서
	DependencyAPIDocs = "api_docs"

	// MsgDepStatusHealthy 외부 의존성 상태: 정상
	MsgDepStatusHealthy = "정상 작동 중"
)
