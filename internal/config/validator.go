package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 에러 메시지에 Go 구조체 필드명 대신 설정 파일의 키 이름(예: listen_port)을 사용합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("abs_uri", validateAbsoluteURI); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'abs_uri' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateCORSOrigin validator 태그를 validation.ValidateCORSOrigin에 연결합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// validateAbsoluteURI 값이 비어 있으면(공백만 있는 경우 포함) 통과하고,
// 값이 있으면 절대 URI 형식인지 검증합니다.
func validateAbsoluteURI(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	return validation.ValidateAbsoluteURI(s) == nil
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		return translateValidationError(err)
	}

	if err := c.HTTP.CORS.validate(); err != nil {
		return err
	}

	return c.HTTP.RateLimit.validate()
}

// validate 속도 제한이 활성화된 경우 버스트 크기가 1 이상인지 검사합니다.
func (c *RateLimitConfig) validate() error {
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return apperrors.Newf(apperrors.InvalidInput, "요청 속도 제한이 활성화된 경우 버스트 크기(http.rate_limit.burst)는 1 이상이어야 합니다: %d", c.Burst)
	}
	return nil
}

// validate 와일드카드(*)와 개별 도메인의 혼용 여부를 검사합니다.
func (c *CORSConfig) validate() error {
	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}
	return nil
}

// translateValidationError validator의 에러를 사용자 친화적인 메시지의 InvalidInput 에러로 변환합니다.
// 여러 필드가 실패한 경우 첫 번째 필드만 보고합니다.
func translateValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	fe := validationErrors[0]
	key := configKey(fe)

	switch fe.Tag() {
	case "required":
		return apperrors.Newf(apperrors.InvalidInput, "필수 설정(%s)이 비어있습니다", key)
	case "required_if":
		return apperrors.Newf(apperrors.InvalidInput, "TLS 서버 활성화 시 %s 설정은 필수입니다", key)
	case "file":
		return apperrors.Newf(apperrors.InvalidInput, "지정된 파일(%s)을 찾을 수 없습니다: '%v'", key, fe.Value())
	case "abs_uri":
		return apperrors.Newf(apperrors.InvalidInput, "%s 값이 올바른 절대 URI가 아닙니다: '%v' (예: https://example.com/terms)", key, fe.Value())
	case "cors_origin":
		return apperrors.Newf(apperrors.InvalidInput, "CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value())
	}

	if fe.StructNamespace() == "AppConfig.HTTP.ListenPort" {
		return apperrors.New(apperrors.InvalidInput, "웹 서버 포트(http.listen_port)는 1에서 65535 사이의 값이어야 합니다")
	}
	if fe.StructNamespace() == "AppConfig.HTTP.CORS.AllowOrigins" && fe.Tag() == "min" {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(http.cors.allow_origins) 목록이 비어있습니다")
	}

	return apperrors.Newf(apperrors.InvalidInput, "%s 설정이 올바르지 않습니다: '%v' (조건: %s)", key, fe.Value(), fe.ActualTag())
}

// configKey 검증 실패한 필드의 설정 키 경로를 반환합니다. 예: "api_info.license.url"
func configKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTP.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.HTTP.ListenPort))
	}

	if c.IsProduction() {
		for _, origin := range c.HTTP.CORS.AllowOrigins {
			if origin == "*" {
				warnings = append(warnings, "운영(Production) 환경에서 모든 도메인의 CORS 요청을 허용(*)하고 있습니다")
				break
			}
		}
		if c.Debug {
			warnings = append(warnings, "운영(Production) 환경에서 디버그 모드가 활성화되어 있습니다")
		}
	}

	if c.HTTP.HTTPSRedirect && !c.HTTP.TLSServer {
		warnings = append(warnings, "HTTPS 리다이렉트가 활성화되었지만 TLS 서버가 비활성화되어 있습니다. TLS를 종료하는 프록시 뒤에서만 사용하세요")
	}

	if c.HTTP.RateLimit.RequestsPerSecond == 0 {
		warnings = append(warnings, "요청 속도 제한(http.rate_limit)이 비활성화되어 있습니다")
	}

	return warnings
}
