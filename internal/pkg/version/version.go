// Package version 빌드 시점에 주입된 메타데이터와 실행 환경으로부터 애플리케이션의 버전 상태를 만듭니다.
//
// 버전 정보는 다음 순서로 채워집니다. 앞 단계에서 얻은 값이 우선합니다.
//
//  1. 링커 플래그(-ldflags -X)로 주입된 패키지 변수
//  2. 실행 파일에 포함된 모듈/VCS 메타데이터(debug.ReadBuildInfo)
//  3. 런타임 값(Go 버전, OS, 아키텍처)
//
// 전역 싱글톤은 없습니다. main에서 Load로 State를 한 번 만들어 필요한 곳에 전달합니다.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"

	applog "github.com/clarusmens/clarus-mens/pkg/log"
)

const (
	unknown = "unknown"
	none    = "none"
	devel   = "(devel)"
)

var readBuildInfo = debug.ReadBuildInfo

// 링커 플래그 주입 대상입니다. 코드에서 직접 읽지 말고 Load가 반환한 State를 사용합니다.
//
//	go build -ldflags "-X github.com/clarusmens/clarus-mens/internal/pkg/version.appVersion=1.2.3 \
//	    -X github.com/clarusmens/clarus-mens/internal/pkg/version.informationalVersion=1.2.3-beta+build.7 \
//	    -X github.com/clarusmens/clarus-mens/internal/pkg/version.buildNumber=17"
var (
	appVersion           = "" // 1.2.3 또는 v1.2.3
	informationalVersion = "" // 1.2.3-beta+build.7
	gitCommitHash        = ""
	gitTreeState         = "" // clean | dirty
	buildDate            = ""
	buildNumber          = "" // 어셈블리 버전의 revision 자리로 사용됩니다.
)

// Info 빌드 메타데이터입니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

func ldflagsInfo() Info {
	return Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}
}

// withBuildMetadata 비어 있는 필드를 실행 파일의 메타데이터와 런타임 값으로 채웁니다.
// 커밋과 빌드 날짜를 끝내 알 수 없으면 "unknown"이 됩니다.
func withBuildMetadata(bi Info) Info {
	if bi.Commit == none || bi.Commit == unknown {
		bi.Commit = ""
	}
	if bi.BuildDate == unknown {
		bi.BuildDate = ""
	}

	if embedded, ok := readBuildInfo(); ok {
		vcs := make(map[string]string, len(embedded.Settings))
		for _, s := range embedded.Settings {
			vcs[s.Key] = s.Value
		}

		bi.Commit = firstNonEmpty(bi.Commit, vcs["vcs.revision"])
		bi.BuildDate = firstNonEmpty(bi.BuildDate, vcs["vcs.time"])
		bi.DirtyBuild = bi.DirtyBuild || vcs["vcs.modified"] == "true"

		if embedded.Main.Version != devel {
			bi.Version = firstNonEmpty(bi.Version, embedded.Main.Version)
		}
	}

	bi.GoVersion = firstNonEmpty(bi.GoVersion, runtime.Version())
	bi.OS = firstNonEmpty(bi.OS, runtime.GOOS)
	bi.Arch = firstNonEmpty(bi.Arch, runtime.GOARCH)
	bi.Commit = firstNonEmpty(bi.Commit, unknown)
	bi.BuildDate = firstNonEmpty(bi.BuildDate, unknown)

	return bi
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LogFields 구조적 로그에 붙일 필드를 반환합니다.
func (i Info) LogFields() applog.Fields {
	return applog.Fields{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"platform":     i.OS + "/" + i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String "1.2.3 (commit f25b8bf, build 17, 2025-01-01, go1.24.0 linux/amd64)" 형태의 요약을 반환합니다.
// 알 수 없는 값은 생략됩니다.
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}

	head := i.Version
	if i.DirtyBuild {
		head += "-dirty"
	}

	var parts []string
	if known(i.Commit) {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, "commit "+commit)
	}
	if i.BuildNumber != "" {
		parts = append(parts, "build "+i.BuildNumber)
	}
	if known(i.BuildDate) {
		parts = append(parts, i.BuildDate)
	}
	if i.GoVersion != "" {
		runtimeDesc := i.GoVersion
		if i.OS != "" && i.Arch != "" {
			runtimeDesc += " " + i.OS + "/" + i.Arch
		}
		parts = append(parts, runtimeDesc)
	}

	if len(parts) == 0 {
		return head
	}
	return head + " (" + strings.Join(parts, ", ") + ")"
}

func known(s string) bool {
	return s != "" && s != unknown
}
