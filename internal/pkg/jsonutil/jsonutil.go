// Package jsonutil 애플리케이션 전역에서 사용하는 JSON 인코딩/디코딩 함수를 제공합니다.
//
// bytedance/sonic의 표준 호환 설정(ConfigStd)을 사용합니다. 맵 키를 정렬하고 HTML 문자를
// 이스케이프하므로 encoding/json과 같은 출력을 만들어 내며, 같은 입력에 대해 항상 같은
// 바이트열을 생성합니다.
package jsonutil

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal v를 압축된(들여쓰기 없는) JSON으로 직렬화합니다.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent v를 들여쓰기가 적용된 JSON으로 직렬화합니다.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal JSON 데이터를 v에 역직렬화합니다.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Encode v를 JSON으로 직렬화하여 w에 씁니다. 끝에 개행 문자가 추가됩니다.
func Encode(w io.Writer, v any) error {
	return api.NewEncoder(w).Encode(v)
}

// Decode r에서 JSON 값 하나를 읽어 v에 역직렬화합니다.
func Decode(r io.Reader, v any) error {
	return api.NewDecoder(r).Decode(v)
}

// Valid data가 올바른 JSON인지 확인합니다.
func Valid(data []byte) bool {
	return api.Valid(data)
}
