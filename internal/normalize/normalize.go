package normalize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/platform/logger"
)

// maxEncodedDepth bounds how many times a string may wrap another encoded
// string before it is given up on.
const maxEncodedDepth = 2

const requirementRequired = "required"

// Headers folds in into a canonical header mapping. field names the request
// field being normalized and only appears in log output. The result is never
// nil.
//
// Array entries without a non-empty key and value are skipped. Map entries
// keep string values as-is and stringify other scalars; null values are
// dropped.
func Headers(ctx context.Context, field string, in Input) domain.Headers {
	in = resolve(ctx, field, in)
	out := domain.Headers{}

	switch in.Form {
	case FormArray:
		for _, entry := range in.Entries {
			key, ok := entry["key"].(string)
			if !ok || key == "" {
				continue
			}
			value, ok := stringValue(entry["value"])
			if !ok || value == "" {
				continue
			}
			out[key] = value
		}
	case FormMap:
		for key, raw := range in.Map {
			if value, ok := stringValue(raw); ok {
				out[key] = value
			}
		}
	}
	return out
}

// Params folds in into a canonical parameter mapping. The result is never nil.
//
// Array entries need a non-empty name; type defaults to "string" and a
// parameter is required when its requirement is "required". Map values may
// be full records ({type, required} or {type, requirement}) or a bare type
// string.
func Params(ctx context.Context, field string, in Input) domain.Params {
	in = resolve(ctx, field, in)
	out := domain.Params{}

	switch in.Form {
	case FormArray:
		for _, entry := range in.Entries {
			name, ok := entry["name"].(string)
			if !ok || name == "" {
				continue
			}
			out[name] = paramSpec(entry)
		}
	case FormMap:
		for name, raw := range in.Map {
			switch v := raw.(type) {
			case nil:
				continue
			case map[string]any:
				out[name] = paramSpec(v)
			case string:
				out[name] = domain.ParamSpec{Type: typeOrDefault(v)}
			default:
				out[name] = domain.ParamSpec{Type: domain.DefaultParamType}
			}
		}
	}
	return out
}

func paramSpec(record map[string]any) domain.ParamSpec {
	typ, _ := record["type"].(string)
	spec := domain.ParamSpec{Type: typeOrDefault(typ)}

	if requirement, ok := record["requirement"].(string); ok {
		spec.Required = requirement == requirementRequired
	} else if required, ok := record["required"].(bool); ok {
		spec.Required = required
	}
	return spec
}

func typeOrDefault(typ string) string {
	if typ = strings.TrimSpace(typ); typ == "" {
		return domain.DefaultParamType
	}
	return typ
}

// resolve unwraps the encoded form into the array or map form it carries.
// Anything that does not decode to an array or object becomes absent.
func resolve(ctx context.Context, field string, in Input) Input {
	for depth := 0; in.Form == FormEncoded; depth++ {
		if strings.TrimSpace(in.Encoded) == "" {
			return Input{}
		}
		if depth >= maxEncodedDepth {
			warn(ctx, field, "encoded value nested too deeply", nil)
			return Input{}
		}

		var raw any
		dec := json.NewDecoder(bytes.NewReader([]byte(in.Encoded)))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			warn(ctx, field, "encoded value is not valid JSON", err)
			return Input{}
		}

		next, err := fromValue(raw)
		if err != nil {
			warn(ctx, field, "encoded value is not an array or object", err)
			return Input{}
		}
		in = next
	}
	return in
}

// warn never logs the raw value, which may carry credentials.
func warn(ctx context.Context, field, msg string, err error) {
	l := logger.FromContext(ctx).With("component", "normalize", "field", field, "form", FormEncoded.String())
	if err != nil {
		l.WarnContext(ctx, msg+", using empty mapping", "error", err)
		return
	}
	l.WarnContext(ctx, msg+", using empty mapping")
}

func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return fmt.Sprint(t), true
	}
}
