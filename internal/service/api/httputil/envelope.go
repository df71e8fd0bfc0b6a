// Package httputil 모든 API 응답이 거쳐 가는 응답 봉투(Envelope)와 전역 에러 핸들러를 제공합니다.
//
// 핸들러는 echo의 c.JSON 대신 OK 또는 WithStatus를 사용합니다. 페이로드는 먼저 완전한
// 바이트열로 직렬화된 뒤, 하나의 본문으로 "application/json" Content-Type과 함께 전송됩니다.
// 직렬화 도중 응답이 부분적으로 쓰이는 일이 없으며, 직렬화 방식이 모든 엔드포인트에서 같습니다.
package httputil

import (
	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/internal/pkg/jsonutil"
	"github.com/labstack/echo/v4"
)

// ContentTypeJSON 모든 Envelope가 선언하는 Content-Type입니다.
const ContentTypeJSON = echo.MIMEApplicationJSON

// Envelope 직렬화가 끝난 HTTP 응답입니다.
type Envelope struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewEnvelope payload를 압축된 JSON으로 직렬화하여 Envelope를 생성합니다.
//
// 구조체 필드 이름은 json 태그가 있으면 태그를, 없으면 lowerCamelCase로 바꾼 필드 이름을
// 따릅니다. 맵 키는 그대로 직렬화됩니다. 필드 이름이 중복되거나 직렬화할 수 없는 값이
// 포함되어 있으면 apperrors.Internal 타입의 에러를 반환합니다.
func NewEnvelope(payload any, status int) (Envelope, error) {
	named, err := applyNamingPolicy(payload)
	if err != nil {
		return Envelope{}, err
	}

	body, err := jsonutil.Marshal(named)
	if err != nil {
		return Envelope{}, apperrors.Wrap(err, apperrors.Internal, "응답 페이로드를 JSON으로 직렬화할 수 없습니다")
	}

	return Envelope{
		StatusCode:  status,
		ContentType: ContentTypeJSON,
		Body:        body,
	}, nil
}

// Send 직렬화된 본문을 한 번에 전송합니다.
func (e Envelope) Send(c echo.Context) error {
	return c.Blob(e.StatusCode, e.ContentType, e.Body)
}

// OK payload를 200 OK 응답으로 전송합니다.
func OK(c echo.Context, payload any) error {
	return WithStatus(c, 200, payload)
}

// WithStatus payload를 지정된 상태 코드의 응답으로 전송합니다.
//
// 직렬화에 실패하면 아무것도 쓰지 않고 에러를 반환하므로, 전역 에러 핸들러가 500 응답을 만듭니다.
func WithStatus(c echo.Context, status int, payload any) error {
	env, err := NewEnvelope(payload, status)
	if err != nil {
		return err
	}
	return env.Send(c)
}
