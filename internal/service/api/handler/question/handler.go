// Package question 질문 엔드포인트 핸들러를 제공합니다.
package question

import (
	"net/http"
	"time"

	"github.com/clarusmens/clarus-mens/internal/service/api/constants"
	"github.com/clarusmens/clarus-mens/internal/service/api/handler"
	"github.com/clarusmens/clarus-mens/internal/service/api/httputil"
	questionmodel "github.com/clarusmens/clarus-mens/internal/service/api/model/question"
	questionsvc "github.com/clarusmens/clarus-mens/internal/service/question"
	applog "github.com/clarusmens/clarus-mens/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 질문 엔드포인트 핸들러
type Handler struct {
	answerer questionsvc.Answerer

	now func() time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(answerer questionsvc.Answerer) *Handler {
	if answerer == nil {
		panic(constants.PanicMsgAnswererRequired)
	}

	return &Handler{
		answerer: answerer,
		now:      time.Now,
	}
}

// AnswerHandler godoc
// @Summary 질문에 답변
// @Description 질문에 포함된 키워드로 미리 정의된 답변을 찾아 반환합니다.
// @Description 질문은 비어 있을 수 없으며 최대 500자까지 허용됩니다.
// @Tags Question
// @Produce json
// @Param query query string true "질문 내용" maxlength(500)
// @Success 200 {object} question.QuestionResponse "질문과 답변"
// @Failure 400 {object} response.ErrorResponse "질문이 비어 있거나 너무 김"
// @Failure 500 {object} response.ProblemResponse "답변 생성 실패"
// @Router /api/question [get]
func (h *Handler) AnswerHandler(c echo.Context) error {
	var req questionmodel.QuestionRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}

	if err := handler.ValidateRequest(&req); err != nil {
		return httputil.NewBadRequestError(validationMessage(err))
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/api/question",
		"length":    len([]rune(req.Query)),
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgQuestionReceived)

	answer, err := h.answerer.Answer(c.Request().Context(), req.Query)
	if err != nil {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"endpoint": "/api/question",
			"error":    err,
		}).Error(constants.LogMsgQuestionFailed)

		return httputil.NewProblemError(http.StatusInternalServerError, constants.ErrTitleQuestionProcessing, constants.ErrDetailQuestionProcessing)
	}

	return httputil.OK(c, questionmodel.QuestionResponse{
		Question:    req.Query,
		Answer:      answer,
		ProcessedAt: h.now().UTC(),
	})
}

// validationMessage 질문 검증 실패를 클라이언트 메시지로 변환합니다.
func validationMessage(err error) string {
	fe, ok := handler.FirstFieldError(err)
	if !ok {
		return constants.ErrMsgBadRequest
	}

	switch fe.Tag() {
	case "notblank", "required":
		return constants.ErrMsgQuestionEmpty
	case "max":
		return constants.ErrMsgQuestionTooLong
	default:
		return handler.FormatValidationError(err)
	}
}
