package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/model/response"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
)

// fallbackBody 에러 응답조차 직렬화하지 못했을 때 전송하는 고정 본문입니다.
var fallbackBody = []byte(`{"error":"Internal Server Error"}`)

// NewBadRequestError 400 Bad Request 에러를 생성합니다
func NewBadRequestError(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, response.ErrorResponse{Error: message})
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다
func NewTooManyRequestsError(message string) error {
	return echo.NewHTTPError(http.StatusTooManyRequests, response.ErrorResponse{Error: message})
}

// NewProblemError Problem Details 본문을 가진 에러를 생성합니다.
func NewProblemError(status int, title, detail string) error {
	return echo.NewHTTPError(status, response.ProblemResponse{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 핸들러가 반환한 모든 에러를 Envelope로 직렬화하여 응답합니다. 상태 코드는 다음 순서로 결정됩니다.
//   - *echo.HTTPError: 에러의 Code와 Message를 그대로 사용
//   - *apperrors.AppError: 근본 에러 타입에 대응하는 상태 코드 (InvalidInput -> 400 등)
//   - 그 외: 500
//
// 5xx 응답에는 내부 에러 메시지를 노출하지 않습니다.
func ErrorHandler(err error, c echo.Context) {
	code, payload := resolveError(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		// 5xx: 서버 내부 오류 - 즉시 조치 필요
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		// 4xx: 클라이언트 요청 오류 - 정상적인 거부 응답
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이중 응답 방지: 이미 응답이 전송된 경우 추가 응답 시도하지 않음
	if c.Response().Committed {
		return
	}

	// HEAD 요청은 헤더만 반환합니다.
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	env, envErr := NewEnvelope(payload, code)
	if envErr != nil {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, applog.Fields{
			"status_code": code,
			"error":       envErr,
		}).Error(constants.LogMsgEnvelopeFallback)

		_ = c.Blob(code, ContentTypeJSON, fallbackBody)
		return
	}

	_ = env.Send(c)
}

// resolveError 에러로부터 응답 상태 코드와 본문을 결정합니다.
func resolveError(err error) (int, any) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch m := he.Message.(type) {
		case response.ErrorResponse, response.ProblemResponse:
			return he.Code, m
		case string:
			if he.Code >= http.StatusInternalServerError && he.Code != http.StatusServiceUnavailable {
				return he.Code, response.ErrorResponse{Error: constants.ErrMsgInternalServer}
			}
			return he.Code, response.ErrorResponse{Error: m}
		default:
			return he.Code, response.ErrorResponse{Error: http.StatusText(he.Code)}
		}
	}

	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			code := apperrors.HTTPStatus(err)
			if code < http.StatusInternalServerError {
				return code, response.ErrorResponse{Error: apperrors.Message(err)}
			}
			return code, response.ErrorResponse{Error: http.StatusText(code)}
		}
	}

	return http.StatusInternalServerError, response.ErrorResponse{Error: constants.ErrMsgInternalServer}
}
