// Package question 질문 엔드포인트의 응답 모델을 제공합니다.
package question

import "time"

// QuestionResponse 질문과 답변
type QuestionResponse struct {
	// 사용자가 보낸 질문
	Question string `json:"question" example:"Hello, who are you?"`
	// 생성된 답변
	Answer string `json:"answer" example:"Hello there! How can I help you?"`
	// 답변 생성 시각 (UTC)
	ProcessedAt time.Time `json:"processedAt" example:"2025-01-01T12:00:00Z"`
}
