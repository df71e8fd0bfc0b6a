package version

import (
	"fmt"
	"strings"

	"github.com/clarusmens/clarus-mens/internal/pkg/semver"
)

// 잘 알려진 실행 환경 이름입니다. 비교는 대소문자를 구분합니다.
const (
	Production  = "Production"
	Staging     = "Staging"
	Development = "Development"
)

// Environment 현재 실행 환경의 이름을 제공하는 인터페이스입니다.
type Environment interface {
	Name() string
}

// StaticEnvironment 고정된 이름을 반환하는 Environment 구현입니다.
type StaticEnvironment string

// Name 환경 이름을 반환합니다.
func (e StaticEnvironment) Name() string {
	return string(e)
}

// State 프로세스 전체에서 공유되는 불변 버전 상태입니다.
//
// 시작 시점에 한 번 생성되며 이후에는 읽기 전용이므로 여러 고루틴에서 잠금 없이 사용할 수 있습니다.
type State struct {
	semVer   semver.SemVer
	revision uint64
	info     Info
	env      Environment
}

// NewState 주어진 값으로 State를 생성합니다. env가 nil이면 Production으로 간주합니다.
func NewState(v semver.SemVer, revision uint64, info Info, env Environment) *State {
	if env == nil {
		env = StaticEnvironment(Production)
	}
	info.Version = v.String()
	return &State{
		semVer:   v,
		revision: revision,
		info:     info,
		env:      env,
	}
}

// Load 링커 플래그와 실행 파일의 빌드 메타데이터로 State를 생성합니다.
//
// 기본 버전은 appVersion, 없으면 모듈 버전에서 가져옵니다. 두 값 모두 앞의 "v"는 떼어냅니다.
// informationalVersion이 비어 있으면 기본 버전 문자열을 informational 값으로 사용합니다.
// 어떤 값도 없으면 0.0.0이 됩니다.
func Load(env Environment) *State {
	bi := withBuildMetadata(ldflagsInfo())

	base := strings.TrimPrefix(bi.Version, "v")
	informational := strings.TrimPrefix(strings.TrimSpace(informationalVersion), "v")
	if informational == "" {
		informational = base
	}

	major, minor, patch := ParseBase(base)
	return NewState(Resolve(major, minor, patch, informational), parseRevision(bi.BuildNumber), bi, env)
}

// SemVer 해석된 SemVer 값을 반환합니다.
func (s *State) SemVer() semver.SemVer {
	return s.semVer
}

// Environment 주입된 실행 환경을 반환합니다.
func (s *State) Environment() Environment {
	return s.env
}

// Info 빌드 정보를 반환합니다.
func (s *State) Info() Info {
	return s.info
}

// DisplayVersion 표시용 버전 문자열을 반환합니다.
//
// 환경 이름이 정확히 "Production"이면 SemVer 문자열만 반환하고,
// 그 외에는 "1.2.3-beta (Development)" 처럼 괄호로 감싼 환경 이름을 덧붙입니다.
func (s *State) DisplayVersion() string {
	name := s.env.Name()
	if name == Production {
		return s.semVer.String()
	}
	return fmt.Sprintf("%s (%s)", s.semVer, name)
}

// AssemblyVersion "major.minor.build.revision" 형식의 4자리 버전을 반환합니다.
// build는 patch, revision은 빌드 번호입니다.
func (s *State) AssemblyVersion() string {
	return fmt.Sprintf("%d.%d.%d.%d", s.semVer.Major(), s.semVer.Minor(), s.semVer.Patch(), s.revision)
}
