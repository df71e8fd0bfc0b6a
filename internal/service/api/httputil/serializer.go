package httputil

import (
	"net/http"

	"github.com/clarusmens/clarus-mens/internal/pkg/jsonutil"
	"github.com/labstack/echo/v4"
)

// JSONSerializer echo.JSONSerializer를 sonic 기반 jsonutil로 구현합니다.
// 요청 본문 바인딩(c.Bind)도 응답 봉투와 같은 JSON 구현을 사용하게 됩니다.
type JSONSerializer struct{}

var _ echo.JSONSerializer = JSONSerializer{}

// Serialize i를 JSON으로 직렬화하여 응답 본문에 씁니다.
func (JSONSerializer) Serialize(c echo.Context, i any, indent string) error {
	if indent != "" {
		b, err := jsonutil.MarshalIndent(i, "", indent)
		if err != nil {
			return err
		}
		_, err = c.Response().Write(b)
		return err
	}
	return jsonutil.Encode(c.Response(), i)
}

// Deserialize 요청 본문을 i에 역직렬화합니다.
func (JSONSerializer) Deserialize(c echo.Context, i any) error {
	if err := jsonutil.Decode(c.Request().Body, i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "잘못된 JSON 형식입니다").SetInternal(err)
	}
	return nil
}
