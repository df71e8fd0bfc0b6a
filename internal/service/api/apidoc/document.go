package apidoc

import (
	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/internal/pkg/jsonutil"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// standardResponses 문서화된 모든 오퍼레이션에 없으면 추가되는 공통 응답 설명입니다.
var standardResponses = []struct {
	code        string
	description string
}{
	{"400", "Bad Request - The request was malformed or contained invalid parameters."},
	{"401", "Unauthorized - Authentication is required and has failed or has not been provided."},
	{"500", "Server Error - An unexpected server error occurred."},
}

// Document Descriptor가 info 객체로 반영된 API 문서입니다.
//
// 생성 시점에 Swagger 2.0 문서와 OpenAPI 3 문서를 모두 만들어 두며, 이후에는 변경되지 않으므로
// 여러 고루틴에서 동시에 읽어도 안전합니다. swag.Swagger를 구현하므로 swag 레지스트리에 등록하거나
// Swagger UI의 doc.json으로 그대로 제공할 수 있습니다.
type Document struct {
	name       string
	descriptor Descriptor

	swagger2 []byte
	openapi3 []byte
}

var _ swag.Swagger = (*Document)(nil)

// NewDocument base가 생성한 Swagger 2.0 문서의 info를 descriptor로 교체한 Document를 만듭니다.
func NewDocument(name string, base swag.Swagger, descriptor Descriptor) (*Document, error) {
	var doc map[string]any
	if err := jsonutil.Unmarshal([]byte(base.ReadDoc()), &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "기본 Swagger 문서를 해석할 수 없습니다")
	}
	doc["info"] = descriptor

	v2, err := jsonutil.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "Swagger 문서를 직렬화할 수 없습니다")
	}

	v3, err := toOpenAPI3(v2)
	if err != nil {
		return nil, err
	}

	return &Document{
		name:       name,
		descriptor: descriptor,
		swagger2:   v2,
		openapi3:   v3,
	}, nil
}

// Name 문서 그룹 이름을 반환합니다.
func (d *Document) Name() string {
	return d.name
}

// Descriptor 문서에 반영된 메타데이터를 반환합니다.
func (d *Document) Descriptor() Descriptor {
	return d.descriptor
}

// ReadDoc Swagger 2.0 문서를 반환합니다.
func (d *Document) ReadDoc() string {
	return string(d.swagger2)
}

// OpenAPI3 OpenAPI 3 문서를 반환합니다. 호출자는 반환된 슬라이스를 수정하면 안 됩니다.
func (d *Document) OpenAPI3() []byte {
	return d.openapi3
}

func toOpenAPI3(v2 []byte) ([]byte, error) {
	var doc2 openapi2.T
	if err := jsonutil.Unmarshal(v2, &doc2); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "Swagger 2.0 문서를 해석할 수 없습니다")
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "OpenAPI 3 문서로 변환할 수 없습니다")
	}

	addStandardResponses(doc3)

	b, err := doc3.MarshalJSON()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "OpenAPI 3 문서를 직렬화할 수 없습니다")
	}
	return b, nil
}

func addStandardResponses(doc *openapi3.T) {
	if doc.Paths == nil {
		return
	}

	for _, item := range doc.Paths.Map() {
		for _, op := range item.Operations() {
			if op.Responses == nil {
				op.Responses = &openapi3.Responses{}
			}
			for _, r := range standardResponses {
				if op.Responses.Value(r.code) != nil {
					continue
				}
				op.Responses.Set(r.code, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription(r.description),
				})
			}
		}
	}
}
