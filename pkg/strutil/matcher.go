package strutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// KeywordMatcher 포함/제외 키워드 조건으로 문자열을 검사합니다.
//
// 생성 시점에 키워드를 Unicode case folding 형태로 전처리하므로 같은 키워드 셋으로
// 여러 문자열을 검사할 때 반복적인 파싱 비용이 없습니다. 생성 이후 변경되지 않으므로
// 여러 고루틴에서 동시에 사용할 수 있습니다.
type KeywordMatcher struct {
	// includedGroups 포함 키워드 그룹 (그룹 간 AND, 그룹 내부는 파이프(|)로 구분된 OR)
	// 예: ["a", "b|c"] -> a를 포함하고, (b 또는 c)를 포함해야 함
	includedGroups [][]string

	// excluded 제외 키워드 목록 (하나라도 포함되면 불일치)
	excluded []string
}

// NewKeywordMatcher 주어진 포함/제외 키워드로 새로운 KeywordMatcher를 생성합니다.
// 빈 키워드는 무시합니다.
func NewKeywordMatcher(included, excluded []string) *KeywordMatcher {
	m := &KeywordMatcher{
		includedGroups: make([][]string, 0, len(included)),
		excluded:       make([]string, 0, len(excluded)),
	}

	for _, k := range excluded {
		if k = strings.TrimSpace(k); k != "" {
			m.excluded = append(m.excluded, Fold(k))
		}
	}

	for _, k := range included {
		group := SplitClean(k, "|")
		if len(group) == 0 {
			continue
		}
		for i, v := range group {
			group[i] = Fold(v)
		}
		m.includedGroups = append(m.includedGroups, group)
	}

	return m
}

// Match 대상 문자열이 제외 키워드를 포함하지 않고 모든 포함 키워드 그룹을 만족하면 true를 반환합니다.
// 대소문자를 구분하지 않습니다.
func (m *KeywordMatcher) Match(s string) bool {
	folded := Fold(s)

	for _, k := range m.excluded {
		if strings.Contains(folded, k) {
			return false
		}
	}

	for _, group := range m.includedGroups {
		matched := false
		for _, k := range group {
			if strings.Contains(folded, k) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Fold 대소문자 구분 없는 비교를 위해 문자열을 Unicode case folding 형태로 변환합니다.
// cases.Caser는 고루틴 간 공유할 수 없으므로 호출마다 새로 생성합니다.
func Fold(s string) string {
	return cases.Fold().String(s)
}
