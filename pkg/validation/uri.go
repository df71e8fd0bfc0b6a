package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ValidateAbsoluteURI 문자열이 스키마를 포함한 절대 URI인지 검증합니다.
//
// "https://example.com/terms", "mailto:legal@example.com" 처럼 스키마와 함께
// 호스트 또는 불투명(opaque) 부분이 있어야 합니다. "/terms" 같은 상대 경로는 거부합니다.
func ValidateAbsoluteURI(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("URI는 비어있을 수 없습니다")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("URI 형식이 올바르지 않습니다 (input=%q): %w", raw, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("절대 URI가 아닙니다. 스키마가 필요합니다 (input=%q)", raw)
	}
	if u.Host == "" && u.Opaque == "" {
		return fmt.Errorf("URI에 호스트 정보가 누락되었습니다 (input=%q)", raw)
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		if err := validateURIHost(u.Hostname()); err != nil {
			return fmt.Errorf("URI 호스트 검증 실패 (input=%q): %w", raw, err)
		}
	}

	return nil
}

// validateURIHost 국제화 도메인(IDN)은 Punycode로 바꾸고, FQDN 표기의 끝 점 하나는 떼어낸 뒤 검증합니다.
func validateURIHost(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}

	host = strings.TrimSuffix(host, ".")
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return fmt.Errorf("국제화 도메인 이름을 변환할 수 없습니다 (host=%q): %w", host, err)
	}
	return ValidateHostname(ascii)
}
