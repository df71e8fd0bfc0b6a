// Package question 질문에 대한 답변을 생성하는 서비스를 제공합니다.
package question

import (
	"context"

	"github.com/clarusmens/clarus-mens/pkg/strutil"
)

// FallbackAnswer 어떤 키워드와도 일치하지 않을 때의 답변입니다.
const FallbackAnswer = "I don't have an answer for that question yet. As we grow, I'll learn to answer more questions."

// Answerer 질문에 대한 답변을 생성합니다.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Rule 키워드와 그에 대한 답변입니다.
type Rule struct {
	Keyword string
	Answer  string
}

// DefaultRules 기본 키워드 답변 목록입니다. 선언 순서대로 검사합니다.
var DefaultRules = []Rule{
	{Keyword: "hello", Answer: "Hello there! How can I help you?"},
	{Keyword: "what is your name", Answer: "I am Clarus Mens, an AI assistant."},
	{Keyword: "what time is it", Answer: "I don't have real-time capabilities, but you can check your device's clock."},
	{Keyword: "how does this work", Answer: "You ask a question, and I provide an answer using my AI capabilities."},
}

type compiledRule struct {
	matcher *strutil.KeywordMatcher
	answer  string
}

// KeywordAnswerer 질문에 키워드가 포함되어 있는지(대소문자 무시) 검사하여 답변합니다.
// 여러 키워드가 일치하면 먼저 선언된 규칙의 답변을 사용합니다.
type KeywordAnswerer struct {
	rules    []compiledRule
	fallback string
}

var _ Answerer = (*KeywordAnswerer)(nil)

// NewKeywordAnswerer rules로 KeywordAnswerer를 생성합니다. 키워드가 비어 있는 규칙은 무시합니다.
func NewKeywordAnswerer(rules []Rule, fallback string) *KeywordAnswerer {
	a := &KeywordAnswerer{
		rules:    make([]compiledRule, 0, len(rules)),
		fallback: fallback,
	}

	for _, r := range rules {
		if strutil.NormalizeSpaces(r.Keyword) == "" {
			continue
		}
		a.rules = append(a.rules, compiledRule{
			matcher: strutil.NewKeywordMatcher([]string{r.Keyword}, nil),
			answer:  r.Answer,
		})
	}

	return a
}

// NewDefaultAnswerer 기본 규칙과 기본 답변을 사용하는 KeywordAnswerer를 생성합니다.
func NewDefaultAnswerer() *KeywordAnswerer {
	return NewKeywordAnswerer(DefaultRules, FallbackAnswer)
}

// Answer 질문과 일치하는 첫 번째 규칙의 답변을 반환합니다.
func (a *KeywordAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for _, r := range a.rules {
		if r.matcher.Match(question) {
			return r.answer, nil
		}
	}
	return a.fallback, nil
}
