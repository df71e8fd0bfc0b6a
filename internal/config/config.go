package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "clarus-mens"

	// DefaultFilename 실행 인자로 설정 파일 경로가 주어지지 않았을 때 사용하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정값을 덮어쓰는 환경 변수의 접두사입니다.
	// 이중 언더스코어(__)는 계층 구분자입니다. 예: CLARUS_HTTP__LISTEN_PORT -> http.listen_port
	EnvPrefix = "CLARUS_"

	// DefaultAPIVersion API 문서 그룹의 기본 이름입니다.
	DefaultAPIVersion = "v0"

	// DefaultListenPort 웹 서버의 기본 포트입니다.
	DefaultListenPort = 8080
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Environment string        `json:"environment" validate:"required"`
	Debug       bool          `json:"debug"`
	APIVersion  string        `json:"api_version" validate:"required"`
	APIInfo     APIInfoConfig `json:"api_info"`
	HTTP        HTTPConfig    `json:"http"`
	Log         LogConfig     `json:"log"`

	// values 모든 설정 소스가 병합된 원본 키-값 트리입니다.
	values *koanf.Koanf
}

// APIInfoConfig API 문서에 노출되는 메타데이터 설정입니다.
// 비어 있는 항목은 기본값으로 대체되거나 문서에서 생략됩니다.
type APIInfoConfig struct {
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Contact        ContactConfig `json:"contact"`
	License        LicenseConfig `json:"license"`
	TermsOfService string        `json:"terms_of_service" validate:"abs_uri"`
}

// ContactConfig API 담당자 연락처 설정입니다.
type ContactConfig struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url" validate:"abs_uri"`
}

// LicenseConfig API 라이선스 설정입니다.
type LicenseConfig struct {
	Name string `json:"name"`
	URL  string `json:"url" validate:"abs_uri"`
}

// HTTPConfig 웹 서버의 포트, TLS, 미들웨어 정책 설정입니다.
type HTTPConfig struct {
	ListenPort    int             `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer     bool            `json:"tls_server"`
	TLSCertFile   string          `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile    string          `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	HTTPSRedirect bool            `json:"https_redirect"`
	H2C           bool            `json:"h2c"`
	CORS          CORSConfig      `json:"cors"`
	RateLimit     RateLimitConfig `json:"rate_limit"`
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책 설정입니다.
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

// RateLimitConfig IP별 요청 속도 제한 설정입니다. RequestsPerSecond가 0이면 비활성화됩니다.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gte=0"`
	Burst             int     `json:"burst" validate:"gte=0"`
}

// LogConfig 로그 파일 저장 설정입니다.
type LogConfig struct {
	Dir    string `json:"dir"`
	MaxAge int    `json:"max_age" validate:"gte=0"`
}

// Default 설정 파일에 값이 없을 때 적용되는 기본 설정을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Environment: version.Production,
		APIVersion:  DefaultAPIVersion,
		HTTP: HTTPConfig{
			ListenPort: DefaultListenPort,
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 20,
				Burst:             40,
			},
		},
		Log: LogConfig{
			Dir:    "logs",
			MaxAge: 30,
		},
	}
}

// Values 모든 설정 소스가 병합된 키-값 트리를 반환합니다.
// 키는 점(.)으로 구분된 경로입니다. 예: "api_info.license.url"
func (c *AppConfig) Values() *koanf.Koanf {
	if c.values == nil {
		c.values = koanf.New(".")
	}
	return c.values
}

// IsProduction 실행 환경이 Production인지 여부를 반환합니다.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == version.Production
}

// IsDevelopment 실행 환경이 Development인지 여부를 반환합니다.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == version.Development
}

// LoadOptions 설정 로드 방식을 지정합니다.
type LoadOptions struct {
	// Filename 기본 설정 파일 경로 (비어 있으면 DefaultFilename)
	Filename string

	// Environment 실행 환경 이름. 지정하면 설정 파일과 환경 변수의 값보다 우선합니다.
	Environment string
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return LoadWithOptions(LoadOptions{Filename: filename})
}

// LoadWithOptions 다음 순서로 설정을 병합합니다. 뒤에 오는 값이 앞의 값을 덮어씁니다.
//
//  1. 기본값 (Default)
//  2. 기본 설정 파일 (clarus-mens.json, 필수)
//  3. 환경별 설정 파일 (clarus-mens.<Environment>.json, 선택)
//  4. 환경 변수 (CLARUS_ 접두사)
//  5. LoadOptions.Environment
func LoadWithOptions(opts LoadOptions) (*AppConfig, error) {
	filename := opts.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. 기본 설정 파일 로드
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경별 설정 파일 로드
	environment := resolveEnvironment(k, opts.Environment)
	overlay := overlayFilename(filename, environment)
	if err := k.Load(file.Provider(overlay), json.Parser()); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("환경별 설정 파일 로드 중 오류가 발생했습니다: '%s'", overlay))
	}

	// 4. 환경 변수 로드
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 5. 명시적으로 지정된 실행 환경 (최우선 순위)
	if opts.Environment != "" {
		if err := k.Set("environment", opts.Environment); err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, "실행 환경 설정에 실패했습니다")
		}
	}

	// 6. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 구조체에 없는 필드가 있으면 오타로 간주하여 에러를 발생시킴
			WeaklyTypedInput: true, // 환경 변수의 문자열 값을 숫자/불리언으로 변환
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSpaceHook,
			),
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}
	appConfig.values = k

	// 7. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// resolveEnvironment 환경별 설정 파일을 고르기 위한 실행 환경 이름을 결정합니다.
// 우선순위: 명시적 지정 > 환경 변수 > 기본 설정 파일 > 기본값
func resolveEnvironment(k *koanf.Koanf, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "ENVIRONMENT")); v != "" {
		return v
	}
	if v := strings.TrimSpace(k.String("environment")); v != "" {
		return v
	}
	return version.Production
}

// overlayFilename "dir/clarus-mens.json"과 "Development"로부터 "dir/clarus-mens.Development.json"을 만듭니다.
func overlayFilename(filename, environment string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "." + environment + ext
}

// envKey 환경 변수 이름을 설정 키 경로로 변환합니다.
// 예: CLARUS_API_INFO__LICENSE__URL -> api_info.license.url
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// trimSpaceHook 문자열 설정값의 앞뒤 공백을 제거합니다.
func trimSpaceHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}
