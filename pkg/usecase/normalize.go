package usecase

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// NormalizeFilterValues maps a raw lookup response onto filter values
// following the field's schema. It never fails: malformed or unexpected
// input yields an empty, non-nil slice. Elements without an identifier are
// dropped.
func NormalizeFilterValues(field types.FieldID, raw []byte) []model.FilterValue {
	out := []model.FilterValue{}
	schema := SchemaOf(field)
	if schema == nil {
		return out
	}

	for _, elem := range locateRecords(raw, schema) {
		obj := map[string]json.RawMessage{}
		if err := json.Unmarshal(elem, &obj); err != nil {
			continue
		}
		if schema.ActiveKey != "" && isFalse(obj[schema.ActiveKey]) {
			continue
		}

		id := firstString(obj, schema.IDKeys)
		if id == "" {
			continue
		}
		desc := composeName(obj, schema.NameParts)
		if desc == "" {
			desc = firstString(obj, schema.DescKeys)
		}
		if desc == "" && schema.DescFallbackToID {
			desc = id
		}
		if desc == "" && schema.RequireDesc {
			continue
		}

		out = append(out, model.FilterValue{FieldID: field, FilterID: id, FilterDesc: desc})
	}
	return out
}

// locateRecords finds the record array of a response
func locateRecords(raw []byte, schema *FieldSchema) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil
		}
		return arr

	case '{':
		keys, props := orderedProperties(raw)
		for _, k := range schema.ArrayKeys {
			if arr, ok := asArray(props[k]); ok {
				return arr
			}
		}
		for _, k := range keys {
			if arr, ok := asArray(props[k]); ok {
				return arr
			}
		}
	}
	return nil
}

// orderedProperties decodes the top-level properties of an object keeping
// document order. Decoding stops quietly at the first syntax error.
func orderedProperties(raw []byte) ([]string, map[string]json.RawMessage) {
	props := map[string]json.RawMessage{}
	var keys []string

	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, props
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			break
		}
		if _, dup := props[key]; !dup {
			keys = append(keys, key)
		}
		props[key] = v
	}
	return keys, props
}

func asArray(v json.RawMessage) ([]json.RawMessage, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || v[0] != '[' {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(v, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// scalar renders a string or number property; other kinds are empty
func scalar(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch {
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

func firstString(obj map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		if s := scalar(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

func composeName(obj map[string]json.RawMessage, parts [][]string) string {
	var names []string
	for _, keys := range parts {
		if s := firstString(obj, keys); s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, " ")
}

func isFalse(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "false"
}
