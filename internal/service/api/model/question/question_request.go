package question

// QuestionRequest 질문 요청 (쿼리 파라미터)
type QuestionRequest struct {
	// 질문 내용. 공백만으로 이루어질 수 없으며 최대 500자입니다.
	Query string `query:"query" validate:"notblank,max=500" korean:"질문"`
}
