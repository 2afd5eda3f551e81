// Package codec adds CBOR/JSON/YAML value Kinds that round-trip through
// the bytes Kind, so the rest of the conversion graph gets them for free
// (SPEC_FULL.md PART III "Codec kinds").
package codec

import (
	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/machinefabric/byteconv-go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// CBORValue, JSONValue, YAMLValue wrap a decoded Go value (typically
// map[string]any, []any, or a scalar) tagged with the codec it was
// decoded from/will be encoded to.
type (
	CBORValue struct{ Value any }
	JSONValue struct{ Value any }
	YAMLValue struct{ Value any }
)

var (
	KindCBOR = byteconv.Concrete("cbor-value")
	KindJSON = byteconv.Concrete("json-value")
	KindYAML = byteconv.Concrete("yaml-value")
)

func init() {
	byteconv.RegisterKindOf(func(v any) (byteconv.Kind, bool) {
		switch v.(type) {
		case CBORValue:
			return KindCBOR, true
		case JSONValue:
			return KindJSON, true
		case YAMLValue:
			return KindYAML, true
		}
		return byteconv.Kind{}, false
	})

	byteconv.RegisterConversion(byteconv.KindBytes, KindCBOR, func(v any, _ byteconv.Options) (any, error) {
		var decoded any
		if err := cbor.Unmarshal(v.([]byte), &decoded); err != nil {
			return nil, &byteconv.EncodingError{Encoding: "cbor", Message: "decode failed", Cause: err}
		}
		return CBORValue{Value: decoded}, nil
	})
	byteconv.RegisterConversion(KindCBOR, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		data, err := cbor.Marshal(v.(CBORValue).Value)
		if err != nil {
			return nil, &byteconv.EncodingError{Encoding: "cbor", Message: "encode failed", Cause: err}
		}
		return data, nil
	})

	byteconv.RegisterConversion(byteconv.KindBytes, KindJSON, func(v any, _ byteconv.Options) (any, error) {
		var decoded any
		if err := jsonAPI.Unmarshal(v.([]byte), &decoded); err != nil {
			return nil, &byteconv.EncodingError{Encoding: "json", Message: "decode failed", Cause: err}
		}
		return JSONValue{Value: decoded}, nil
	})
	byteconv.RegisterConversion(KindJSON, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		data, err := jsonAPI.Marshal(v.(JSONValue).Value)
		if err != nil {
			return nil, &byteconv.EncodingError{Encoding: "json", Message: "encode failed", Cause: err}
		}
		return data, nil
	})

	byteconv.RegisterConversion(byteconv.KindBytes, KindYAML, func(v any, _ byteconv.Options) (any, error) {
		var decoded any
		if err := yaml.Unmarshal(v.([]byte), &decoded); err != nil {
			return nil, &byteconv.EncodingError{Encoding: "yaml", Message: "decode failed", Cause: err}
		}
		return YAMLValue{Value: decoded}, nil
	})
	byteconv.RegisterConversion(KindYAML, byteconv.KindBytes, func(v any, _ byteconv.Options) (any, error) {
		data, err := yaml.Marshal(v.(YAMLValue).Value)
		if err != nil {
			return nil, &byteconv.EncodingError{Encoding: "yaml", Message: "encode failed", Cause: err}
		}
		return data, nil
	})
}
