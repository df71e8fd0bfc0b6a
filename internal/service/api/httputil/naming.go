package httputil

import (
	"bytes"
	"encoding"
	"encoding/json"
	"reflect"
	"strings"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/internal/pkg/jsonutil"
	"github.com/iancoleman/strcase"
)

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// object 필드 선언 순서를 유지한 채 직렬화되는 JSON 객체입니다.
type object []member

type member struct {
	name  string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsonutil.Marshal(m.name)
		if err != nil {
			return nil, err
		}
		val, err := jsonutil.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// applyNamingPolicy 구조체 필드 이름에 lowerCamelCase 규칙을 적용한 사본을 반환합니다.
//
// json 태그에 이름이 있으면 그 이름을, 없으면 strcase.ToLowerCamel(필드 이름)을 사용합니다.
// 맵 키는 데이터로 보고 그대로 둡니다. 한 객체 안에서 같은 깊이의 두 필드가 같은 이름이 되면
// apperrors.Internal 에러를 반환합니다.
func applyNamingPolicy(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return transform(reflect.ValueOf(v))
}

func transform(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	// time.Time처럼 스스로 직렬화하는 타입은 건드리지 않습니다.
	t := v.Type()
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return v.Interface(), nil
	}
	if v.CanAddr() {
		if pt := reflect.PointerTo(t); pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
			return v.Addr().Interface(), nil
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return transform(v.Elem())

	case reflect.Struct:
		return structObject(v)

	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		// 정수 키처럼 문자열이 아닌 키의 맵은 인코더의 규칙을 따릅니다.
		if t.Key().Kind() != reflect.String {
			return v.Interface(), nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			val, err := transform(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = val
		}
		return out, nil

	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return v.Interface(), nil
		}
		fallthrough

	case reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			val, err := transform(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	}

	return v.Interface(), nil
}

type namedField struct {
	name  string
	depth int
	value reflect.Value
}

func structObject(v reflect.Value) (any, error) {
	fields, err := collectFields(v, 0, nil)
	if err != nil {
		return nil, err
	}

	obj := make(object, 0, len(fields))
	for _, f := range fields {
		val, err := transform(f.value)
		if err != nil {
			return nil, err
		}
		obj = append(obj, member{name: f.name, value: val})
	}
	return obj, nil
}

// collectFields 임베디드 구조체의 필드를 펼쳐 직렬화 대상 필드를 선언 순서대로 모읍니다.
// 바깥 필드는 같은 이름의 임베디드 필드를 가립니다.
func collectFields(v reflect.Value, depth int, fields []namedField) ([]namedField, error) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := v.Field(i)

		if sf.Anonymous && name == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				var err error
				if fields, err = collectFields(fv, depth+1, fields); err != nil {
					return nil, err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		if name == "" {
			name = strcase.ToLowerCamel(sf.Name)
		}

		var err error
		if fields, err = addField(fields, namedField{name: name, depth: depth, value: fv}, t); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func addField(fields []namedField, f namedField, owner reflect.Type) ([]namedField, error) {
	for i, existing := range fields {
		if existing.name != f.name {
			continue
		}
		switch {
		case existing.depth < f.depth:
			return fields, nil
		case existing.depth > f.depth:
			fields[i] = f
			return fields, nil
		default:
			return nil, apperrors.Newf(apperrors.Internal, "응답 필드 이름 %q가 %s 안에서 중복됩니다", f.name, owner)
		}
	}
	return append(fields, f), nil
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
