// Package apidoc API 문서의 메타데이터(Descriptor)를 조립하고, 이를 반영한 Swagger 2.0 및
// OpenAPI 3 문서를 제공합니다.
//
// Descriptor의 각 필드는 fields 테이블에 정의된 순서대로 값을 찾습니다.
//
//  1. 설정 값 (공백만 있는 값은 없는 것으로 간주)
//  2. 기본값
//  3. 생략
//
// 새 필드는 테이블에 행을 추가하는 것만으로 지원할 수 있습니다.
package apidoc

import (
	"strings"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/pkg/validation"
)

// 문서 메타데이터의 기본값입니다.
const (
	DefaultTitle       = "Clarus Mens API"
	DefaultDescription = "API for Clarus Mens question answering service"
	DefaultLicenseName = "Apache License 2.0"
	DefaultLicenseURL  = "https://www.apache.org/licenses/LICENSE-2.0"

	// DefaultDocumentName api_version이 설정되지 않았을 때의 문서 이름입니다.
	DefaultDocumentName = "v0"
)

// 설정 키 경로입니다.
const (
	KeyDocumentName   = "api_version"
	KeyTitle          = "api_info.name"
	KeyDescription    = "api_info.description"
	KeyContactName    = "api_info.contact.name"
	KeyContactEmail   = "api_info.contact.email"
	KeyContactURL     = "api_info.contact.url"
	KeyLicenseName    = "api_info.license.name"
	KeyLicenseURL     = "api_info.license.url"
	KeyTermsOfService = "api_info.terms_of_service"
)

// Source 설정 값을 키로 조회하는 기능입니다. *koanf.Koanf가 이를 만족합니다.
// 값이 없으면 빈 문자열을 반환해야 합니다.
type Source interface {
	String(key string) string
}

// Descriptor API 문서의 info 객체입니다.
type Descriptor struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Version        string   `json:"version"`
	TermsOfService string   `json:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
	License        License  `json:"license"`
}

// Contact API 담당자 연락처입니다. 모든 항목은 선택입니다.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License API 라이선스 정보입니다.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// field Descriptor 필드 하나의 값 결정 규칙입니다.
type field struct {
	key      string
	fallback string // 비어 있으면 설정 값이 없을 때 필드를 생략합니다
	uri      bool   // 설정 값이 절대 URI여야 하는지 여부
	assign   func(d *Descriptor, v string)
}

var fields = []field{
	{key: KeyTitle, fallback: DefaultTitle, assign: func(d *Descriptor, v string) { d.Title = v }},
	{key: KeyDescription, fallback: DefaultDescription, assign: func(d *Descriptor, v string) { d.Description = v }},
	{key: KeyContactName, assign: func(d *Descriptor, v string) { d.contact().Name = v }},
	{key: KeyContactEmail, assign: func(d *Descriptor, v string) { d.contact().Email = v }},
	{key: KeyContactURL, uri: true, assign: func(d *Descriptor, v string) { d.contact().URL = v }},
	{key: KeyLicenseName, fallback: DefaultLicenseName, assign: func(d *Descriptor, v string) { d.License.Name = v }},
	{key: KeyLicenseURL, fallback: DefaultLicenseURL, uri: true, assign: func(d *Descriptor, v string) { d.License.URL = v }},
	{key: KeyTermsOfService, uri: true, assign: func(d *Descriptor, v string) { d.TermsOfService = v }},
}

func (d *Descriptor) contact() *Contact {
	if d.Contact == nil {
		d.Contact = &Contact{}
	}
	return d.Contact
}

// Build 설정과 표시용 버전으로부터 Descriptor를 만듭니다.
//
// version 필드는 설정할 수 없으며 항상 displayVersion입니다. src가 nil이면 모든 필드가
// 기본값을 사용합니다. URI 필드에 형식이 잘못된 값이 설정되어 있으면 InvalidInput 에러를 반환합니다.
func Build(src Source, displayVersion string) (Descriptor, error) {
	d := Descriptor{Version: displayVersion}

	for _, f := range fields {
		v := lookup(src, f.key)
		if v != "" {
			if f.uri {
				if err := validation.ValidateAbsoluteURI(v); err != nil {
					return Descriptor{}, apperrors.Wrapf(err, apperrors.InvalidInput, "API 문서 설정 '%s'의 URI가 올바르지 않습니다", f.key)
				}
			}
			f.assign(&d, v)
			continue
		}
		if f.fallback != "" {
			f.assign(&d, f.fallback)
		}
	}

	return d, nil
}

// DocumentName 문서 그룹 이름(api_version)을 반환합니다.
func DocumentName(src Source) string {
	if v := lookup(src, KeyDocumentName); v != "" {
		return v
	}
	return DefaultDocumentName
}

func lookup(src Source, key string) string {
	if src == nil {
		return ""
	}
	return strings.TrimSpace(src.String(key))
}
