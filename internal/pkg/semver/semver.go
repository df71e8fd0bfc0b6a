// Package semver Semantic Versioning 2.0.0 규격의 버전 값을 표현하는 불변 값 타입을 제공합니다.
//
// 버전은 major.minor.patch 세 개의 음이 아닌 정수와 선택적인 pre-release, build metadata
// 접미사로 구성됩니다. 각 구성 요소는 uint64로 저장되므로 음수 버전은 타입 수준에서
// 표현할 수 없습니다.
//
//	v := semver.New(1, 2, 3, "beta", "build.7")
//	v.String()       // "1.2.3-beta+build.7"
//	v.IsPreRelease() // true
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
)

// pattern SemVer 2.0.0 문자열 형식입니다.
// 1~3번 그룹은 major/minor/patch, 4번은 pre-release, 5번은 build metadata 입니다.
var pattern = regexp.MustCompile(`^([0-9]+)\.([0-9]+)\.([0-9]+)(?:-([0-9A-Za-z\-\.]+))?(?:\+([0-9A-Za-z\-\.]+))?$`)

// SemVer Semantic Versioning 2.0.0 버전 값입니다.
//
// 생성 이후 변경할 수 없으며, 값으로 복사하여 자유롭게 공유할 수 있습니다.
// 제로 값은 "0.0.0" 입니다.
type SemVer struct {
	major         uint64
	minor         uint64
	patch         uint64
	preRelease    string
	buildMetadata string
}

// New 주어진 구성 요소로 SemVer 값을 생성합니다.
// preRelease와 buildMetadata는 빈 문자열일 경우 없는 것으로 취급합니다.
func New(major, minor, patch uint64, preRelease, buildMetadata string) SemVer {
	return SemVer{
		major:         major,
		minor:         minor,
		patch:         patch,
		preRelease:    preRelease,
		buildMetadata: buildMetadata,
	}
}

// Parse 문자열을 SemVer 값으로 해석합니다. 선행 "v" 접두사는 허용합니다.
func Parse(s string) (SemVer, error) {
	m := pattern.FindStringSubmatch(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if m == nil {
		return SemVer{}, apperrors.Newf(apperrors.InvalidInput, "SemVer 형식이 올바르지 않습니다: %q", s)
	}

	var nums [3]uint64
	for i := range nums {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return SemVer{}, apperrors.Wrapf(err, apperrors.InvalidInput, "SemVer 숫자 구성 요소가 범위를 벗어났습니다: %q", m[i+1])
		}
		nums[i] = n
	}

	return New(nums[0], nums[1], nums[2], m[4], m[5]), nil
}

// MustParse Parse와 같지만 실패 시 panic을 발생시킵니다. 상수 버전 초기화에만 사용합니다.
func MustParse(s string) SemVer {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Major 주 버전 번호를 반환합니다.
func (v SemVer) Major() uint64 { return v.major }

// Minor 부 버전 번호를 반환합니다.
func (v SemVer) Minor() uint64 { return v.minor }

// Patch 패치 버전 번호를 반환합니다.
func (v SemVer) Patch() uint64 { return v.patch }

// PreRelease pre-release 식별자를 반환합니다. 없으면 빈 문자열입니다.
func (v SemVer) PreRelease() string { return v.preRelease }

// BuildMetadata build metadata를 반환합니다. 없으면 빈 문자열입니다.
func (v SemVer) BuildMetadata() string { return v.buildMetadata }

// IsPreRelease pre-release 식별자가 있는지 여부를 반환합니다.
// build metadata 존재 여부와는 무관합니다.
func (v SemVer) IsPreRelease() bool {
	return v.preRelease != ""
}

// Core 접미사를 제외한 "major.minor.patch" 문자열을 반환합니다.
func (v SemVer) Core() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// String 정규 형식 "{major}.{minor}.{patch}[-{preRelease}][+{buildMetadata}]" 문자열을 반환합니다.
func (v SemVer) String() string {
	var sb strings.Builder
	sb.WriteString(v.Core())
	if v.preRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.preRelease)
	}
	if v.buildMetadata != "" {
		sb.WriteByte('+')
		sb.WriteString(v.buildMetadata)
	}
	return sb.String()
}

// Compare SemVer 우선순위 규칙에 따라 두 버전을 비교합니다.
// v가 작으면 -1, 같으면 0, 크면 +1을 반환하며 build metadata는 비교에서 제외됩니다.
func (v SemVer) Compare(other SemVer) int {
	if c := compareUint(v.major, other.major); c != 0 {
		return c
	}
	if c := compareUint(v.minor, other.minor); c != 0 {
		return c
	}
	if c := compareUint(v.patch, other.patch); c != 0 {
		return c
	}
	return comparePreRelease(v.preRelease, other.preRelease)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePreRelease pre-release 식별자를 비교합니다.
// pre-release가 없는 버전이 있는 버전보다 우선순위가 높습니다.
func comparePreRelease(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareIdentifier(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return compareUint(uint64(len(as)), uint64(len(bs)))
}

// compareIdentifier 숫자 식별자는 수치로, 그 외는 ASCII 순으로 비교합니다.
// 숫자 식별자는 영숫자 식별자보다 항상 낮습니다.
func compareIdentifier(a, b string) int {
	an, aErr := strconv.ParseUint(a, 10, 64)
	bn, bErr := strconv.ParseUint(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return compareUint(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
