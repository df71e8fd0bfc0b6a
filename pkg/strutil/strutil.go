// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSpaces 문자열의 앞뒤 공백을 제거하고 연속된 공백을 하나로 축약합니다.
// 예: "  hello   world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitClean 문자열을 구분자로 나눈 뒤 각 항목의 공백을 제거하고 빈 항목을 버립니다.
// 예: "a, b,,c " -> ["a", "b", "c"]
func SplitClean(s, sep string) []string {
	parts := strings.Split(s, sep)

	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Mask 민감한 값을 로그에 남길 수 있도록 마스킹합니다.
//
//	"abc"            -> "***"
//	"secret123"      -> "secr***"
//	"verylongtoken!" -> "very***ken!"
func Mask(s string) string {
	if s == "" {
		return ""
	}

	n := utf8.RuneCountInString(s)
	runes := []rune(s)

	switch {
	case n <= 3:
		return "***"
	case n <= 12:
		return string(runes[:4]) + "***"
	default:
		return string(runes[:4]) + "***" + string(runes[n-4:])
	}
}
