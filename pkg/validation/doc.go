/*
Package validation 설정 파일과 API 요청 등 외부 입력값의 형식을 검사하는 함수를 제공합니다.

주요 기능:

  - CORS Origin 검증 (Scheme://Host[:Port])
  - 절대 URI 검증 (라이선스 URL, 이용 약관 URL 등)
  - 포트 번호 및 호스트명(RFC 1123) 검증

모든 검증 함수는 유효하지 않은 입력에 대해 원인을 설명하는 error를 반환하며,
상태를 갖지 않으므로 여러 고루틴에서 동시에 호출할 수 있습니다.
*/
package validation
