package version

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/clarusmens/clarus-mens/internal/pkg/semver"
)

// informationalPattern informational 버전 문자열에서 pre-release(1번 그룹)와
// build metadata(2번 그룹)를 추출하는 패턴입니다.
var informationalPattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)

// basePattern 기본 버전 문자열의 선두 major.minor.patch를 찾는 패턴입니다.
var basePattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)`)

// Resolve 기본 버전 트리플과 informational 문자열로 SemVer를 만듭니다.
//
// informational 문자열이 "[v]M.m.p[-pre][+build]" 형식과 일치하면 접미사를 추출하고,
// 일치하지 않으면 접미사 없이 기본 트리플만 사용합니다. 숫자 부분은 항상 기본 트리플을
// 따르며 informational 문자열의 숫자는 무시합니다. 이 함수는 실패하지 않습니다.
func Resolve(major, minor, patch uint64, informational string) semver.SemVer {
	var preRelease, buildMetadata string
	if m := informationalPattern.FindStringSubmatch(strings.TrimSpace(informational)); m != nil {
		preRelease, buildMetadata = m[1], m[2]
	}
	return semver.New(major, minor, patch, preRelease, buildMetadata)
}

// ParseBase 기본 버전 문자열에서 major.minor.patch를 최대한 추출합니다.
//
// "v1.2.3", "1.2.3-155-gf25b8bf" 처럼 선두가 트리플 형식이면 그 값을 사용하고,
// 형식이 맞지 않거나 범위를 벗어나면 0.0.0을 반환합니다.
func ParseBase(s string) (major, minor, patch uint64) {
	m := basePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0
	}

	var nums [3]uint64
	for i := range nums {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return 0, 0, 0
		}
		nums[i] = n
	}

	return nums[0], nums[1], nums[2]
}

// parseRevision 빌드 번호를 assembly 버전의 revision으로 해석합니다. 숫자가 아니면 0입니다.
func parseRevision(s string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
