package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Form identifies the shape a header or parameter value arrived in.
type Form int

const (
	// FormAbsent is a missing or null value.
	FormAbsent Form = iota
	// FormArray is a list of {key, value} or {name, type, requirement} entries.
	FormArray
	// FormEncoded is a JSON document carried inside a string.
	FormEncoded
	// FormMap is an object already keyed by header or parameter name.
	FormMap
)

// String returns the form name used in log output.
func (f Form) String() string {
	switch f {
	case FormAbsent:
		return "absent"
	case FormArray:
		return "array"
	case FormEncoded:
		return "encoded"
	case FormMap:
		return "map"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// Input is a header or parameter value as submitted by a client.
// Exactly one of Entries, Encoded or Map is meaningful, selected by Form.
type Input struct {
	Form    Form
	Entries []map[string]any
	Encoded string
	Map     map[string]any
}

// FromEntries builds an array-form input.
func FromEntries(entries ...map[string]any) Input {
	return Input{Form: FormArray, Entries: entries}
}

// FromEncoded builds an encoded-form input.
func FromEncoded(s string) Input {
	return Input{Form: FormEncoded, Encoded: s}
}

// FromMap builds a map-form input. A nil map is treated as absent.
func FromMap(m map[string]any) Input {
	if m == nil {
		return Input{}
	}
	return Input{Form: FormMap, Map: m}
}

// IsZero reports whether the input carries no value.
func (in Input) IsZero() bool {
	return in.Form == FormAbsent
}

// UnmarshalJSON selects the form from the JSON token type. Array elements that
// are not objects are dropped here since they can never yield an entry.
func (in *Input) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	parsed, err := fromValue(raw)
	if err != nil {
		return err
	}
	*in = parsed
	return nil
}

// MarshalJSON writes the input back in the form it was received.
func (in Input) MarshalJSON() ([]byte, error) {
	switch in.Form {
	case FormArray:
		return json.Marshal(in.Entries)
	case FormEncoded:
		return json.Marshal(in.Encoded)
	case FormMap:
		return json.Marshal(in.Map)
	default:
		return []byte("null"), nil
	}
}

func fromValue(raw any) (Input, error) {
	switch v := raw.(type) {
	case nil:
		return Input{}, nil
	case []any:
		entries := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				entries = append(entries, obj)
			}
		}
		return Input{Form: FormArray, Entries: entries}, nil
	case string:
		return Input{Form: FormEncoded, Encoded: v}, nil
	case map[string]any:
		return Input{Form: FormMap, Map: v}, nil
	default:
		return Input{}, fmt.Errorf("expected array, object or string, got %T", raw)
	}
}
