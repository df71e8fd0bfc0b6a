package system

// RootResponse 서비스 개요 응답
type RootResponse struct {
	// 서비스 상태: operational, degraded
	Status string `json:"status" example:"operational"`
	// 서비스 이름
	Name string `json:"name" example:"Clarus Mens API"`
	// 표시용 버전 (Production 이외의 환경에서는 환경 이름이 붙음)
	Version string `json:"version" example:"1.2.3-beta (Development)"`
	// 실행 환경 이름
	Environment string `json:"environment" example:"Development"`
	// 라이선스 정보
	License LicenseInfo `json:"license"`
	// 관련 리소스 링크
	Links Links `json:"links"`
}

// LicenseInfo 라이선스 이름과 URL
type LicenseInfo struct {
	Name string `json:"name" example:"Apache License 2.0"`
	URL  string `json:"url" example:"https://www.apache.org/licenses/LICENSE-2.0"`
}

// Links 루트 엔드포인트가 안내하는 리소스 링크
type Links struct {
	Documentation string `json:"documentation" example:"/swagger"`
	OpenAPISpec   string `json:"openapiSpec" example:"/openapi"`
	Health        string `json:"health" example:"/health"`
	Source        string `json:"source" example:"https://github.com/pstackebrandt/clarus-mens"`
}
