package main

import (
	"context"
	"fmt"
	"os"
)

// @title Clarus Mens API
// @version 0.0.0
// @description API for Clarus Mens question answering service
// @description
// @description 질문을 받아 키워드 규칙에 따라 답변을 반환하는 서비스의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 질문에 대한 답변 조회 (GET /api/question)
// @description - 서비스 개요, 버전, 헬스체크 조회
// @description - OpenAPI 3 문서 및 Swagger UI 제공

// @license.name Apache License 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0

// @BasePath /

func main() {
	if err := newRootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		// 로거 초기화 이전에 실패할 수 있으므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
}
