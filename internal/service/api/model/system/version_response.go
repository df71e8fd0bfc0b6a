package system

// VersionResponse 서버 버전 정보 응답
type VersionResponse struct {
	// 정규 SemVer 문자열
	Version string `json:"version" example:"1.2.3-beta+build.7"`
	// SemVer 구성 요소
	SemVer SemVerResponse `json:"semVer"`
	// 어셈블리 버전 (major.minor.patch.revision)
	AssemblyVersion string `json:"assemblyVersion" example:"1.2.3.0"`
}

// SemVerResponse SemVer 구성 요소
type SemVerResponse struct {
	Major         uint64 `json:"major" example:"1"`
	Minor         uint64 `json:"minor" example:"2"`
	Patch         uint64 `json:"patch" example:"3"`
	PreRelease    string `json:"preRelease" example:"beta"`
	BuildMetadata string `json:"buildMetadata" example:"build.7"`
	IsPreRelease  bool   `json:"isPreRelease" example:"true"`
}
